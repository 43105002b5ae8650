package logger

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a no-op until Init runs, so packages can log from tests
// without setting anything up.
var Logger = zap.NewNop()

const timeLayout = "2006/01/02 15:04:05"

func Init(development bool, level string) error {
	var config zap.Config
	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("уровень логирования %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("сборка логгера: %w", err)
	}

	Logger = built
	return nil
}

// Named returns a child logger for a component.
func Named(name string) *zap.Logger {
	return Logger.Named(name)
}

func Sync() {
	_ = Logger.Sync()
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Log(lvl zapcore.Level, msg string, fields ...zap.Field) {
	Logger.Log(lvl, msg, fields...)
}

func HttpRequestInfo(r *http.Request, msg string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("query", r.URL.RawQuery),
		zap.String("client_ip", r.RemoteAddr),
	}
	allFields = append(allFields, fields...)
	Logger.Info(msg, allFields...)
}

func Error(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	Logger.Error(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}
