package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"taskDashboard/internal/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const RequestIdKey contextKey = "request_id"

const RequestIdHeader = "X-Request-ID"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}

		w.Header().Set(RequestIdHeader, requestId)

		ctx := context.WithValue(r.Context(), RequestIdKey, requestId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIdKey).(string); ok {
		return id
	}
	return ""
}

type loggingWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (lw *loggingWriter) WriteHeader(code int) {
	if !lw.wroteHeader {
		lw.status = code
		lw.wroteHeader = true
		lw.ResponseWriter.WriteHeader(code)
	}
}

func (lw *loggingWriter) Write(b []byte) (int, error) {
	if !lw.wroteHeader {
		lw.WriteHeader(http.StatusOK)
	}

	n, err := lw.ResponseWriter.Write(b)
	lw.size += n
	return n, err
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestId := GetRequestID(r.Context())

		logger.Info(
			"HTTP_IN: Начало запроса",
			zap.String("request_id", requestId),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.String("client_ip", r.RemoteAddr),
		)

		lw := &loggingWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}
		next.ServeHTTP(lw, r)

		logLevel := zap.InfoLevel
		if lw.status >= 400 && lw.status < 500 {
			logLevel = zap.WarnLevel
		} else if lw.status >= 500 {
			logLevel = zap.ErrorLevel
		}
		fields := []zap.Field{
			zap.String("request_id", requestId),
			zap.Int("status", lw.status),
			zap.Int("bytes_written", lw.size),
			zap.Duration("ms", time.Since(start)),
		}
		if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
		if location := lw.Header().Get("Location"); location != "" {
			fields = append(fields, zap.String("location", location))
		}
		logger.Log(logLevel, "HTTP_OUT: Завершение запроса", fields...)
	})
}

type clientInfo struct {
	count   int
	resetAt time.Time
}

// RateLimit allows rpm requests per client IP in a fixed one-minute window.
// rpm <= 0 disables the limit.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	if rpm <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	clients := make(map[string]*clientInfo)
	var mtx sync.Mutex
	window := time.Minute

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIp(r)
			now := time.Now()

			mtx.Lock()

			info, exists := clients[ip]
			switch {
			case !exists:
				info = &clientInfo{count: 1, resetAt: now.Add(window)}
				clients[ip] = info
				// просроченные окна других клиентов больше не нужны
				for other, c := range clients {
					if now.After(c.resetAt) {
						delete(clients, other)
					}
				}
			case now.After(info.resetAt):
				info.count = 1
				info.resetAt = now.Add(window)
			case info.count >= rpm:
				retryAfter := int(info.resetAt.Sub(now).Seconds()) + 1
				mtx.Unlock()

				logger.Warn("HTTP: Превышен лимит запросов",
					zap.String("client_ip", ip),
					zap.Int("rpm", rpm))

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.WriteHeader(http.StatusTooManyRequests)

				json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     "Слишком много запросов. Попробуйте позже.",
					"retry_after": retryAfter,
					"request_id":  GetRequestID(r.Context()),
				})
				return
			default:
				info.count++
			}

			remaining := rpm - info.count
			resetUnix := info.resetAt.Unix()

			mtx.Unlock()

			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetUnix, 10))

			next.ServeHTTP(w, r)
		})
	}
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
