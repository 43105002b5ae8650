package handlers

import (
	"net/http"
	"time"

	"taskDashboard/internal/controller"
	"taskDashboard/internal/filter"
	"taskDashboard/internal/filter/query"
	"taskDashboard/internal/handlers/dto"
	"taskDashboard/internal/logger"
	"taskDashboard/internal/models/task"
	"taskDashboard/internal/navigation"
	"taskDashboard/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serviceName = "task-dashboard"

// NavigationModeHeader tells a script-driven client whether to push or
// replace the history entry for the redirect target.
const NavigationModeHeader = "X-Navigation-Mode"

type DashboardHandler struct {
	service  DashboardService
	basePath string
	mode     navigation.Mode
	recorder NavigationRecorder
	now      func() time.Time
}

type HandlerOption func(*DashboardHandler)

func WithBasePath(path string) HandlerOption {
	return func(h *DashboardHandler) {
		if path != "" {
			h.basePath = path
		}
	}
}

func WithMode(mode navigation.Mode) HandlerOption {
	return func(h *DashboardHandler) {
		h.mode = mode
	}
}

func WithRecorder(recorder NavigationRecorder) HandlerOption {
	return func(h *DashboardHandler) {
		h.recorder = recorder
	}
}

func WithClock(now func() time.Time) HandlerOption {
	return func(h *DashboardHandler) {
		if now != nil {
			h.now = now
		}
	}
}

func NewDashboardHandler(svc DashboardService, options ...HandlerOption) *DashboardHandler {
	h := &DashboardHandler{
		service:  svc,
		basePath: controller.DefaultBasePath,
		mode:     navigation.ModeReplace,
		now:      time.Now,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *DashboardHandler) BasePath() string {
	return h.basePath
}

// Routes mounts the dashboard under its base path.
func (h *DashboardHandler) Routes(r chi.Router) {
	r.Route(h.basePath, func(r chi.Router) {
		r.Get("/", h.GetDashboard)                 // GET /dashboard?status=...
		r.Post("/filters/{action}", h.ApplyFilter) // POST /dashboard/filters/{action}
	})
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	q := query.Parse(r.URL.RawQuery)
	model := filter.Decode(q)

	tasks, err := h.service.ListTasks(r.Context(), model)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err)
		responseWithError(w, http.StatusInternalServerError, "не удалось получить задачи")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Duration("ms", time.Since(start)),
		zap.Int("count", len(tasks)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("filters", model),
		toPayload("query", filter.Encode(q).Encode()),
		toPayload("active_filters", model.ActiveCount()),
		toPayload("tasks", dto.FromTaskList(tasks, h.now())),
		toPayload("options", filterOptions()),
	)
}

// ApplyFilter reduces one action against the posted dashboard query and
// redirects to the result. The current query comes from the "current" form
// field, or from the request's own query string when the field is absent.
func (h *DashboardHandler) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !acceptsFilterForm(r) {
		logger.Warn("HTTP: Неверный Content-Type",
			zap.String("content_type", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "ожидается форма application/x-www-form-urlencoded")
		return
	}
	if err := r.ParseForm(); err != nil {
		logger.Warn("HTTP: Ошибка разбора формы",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось разобрать форму: "+err.Error())
		return
	}

	name := chi.URLParam(r, "action")
	value := r.PostForm.Get("value")

	action, err := controller.ParseAction(name, value)
	if err != nil {
		handleBusinessError(w, service.NewUnknownAction(name, controller.ActionNames(), err))
		return
	}
	if err := validateAction(action); err != nil {
		handleBusinessError(w, err)
		return
	}

	current := query.Parse(r.URL.RawQuery)
	if _, ok := r.PostForm["current"]; ok {
		current = query.Parse(r.PostForm.Get("current"))
	}
	location := controller.LocationFunc(func() query.Address {
		return query.Address{Path: h.basePath, Query: current}
	})

	var target query.Address
	navigator := navigation.Func(func(addr query.Address, mode navigation.Mode) {
		target = addr
		w.Header().Set(NavigationModeHeader, mode.String())
		if wantsJSON(r) {
			responseWithJSON(w, http.StatusOK,
				toPayload("location", addr.String()),
				toPayload("mode", mode.String()),
			)
			return
		}
		http.Redirect(w, r, addr.String(), http.StatusSeeOther)
	})

	options := []controller.Option{
		controller.WithBasePath(h.basePath),
		controller.WithMode(h.mode),
		controller.WithLogger(logger.Named("controller")),
	}
	if h.recorder != nil {
		options = append(options, controller.WithObserver(func(a controller.Action, _ query.Address) {
			h.recorder.ObserveNavigation(a.Name())
		}))
	}

	controller.New(location, navigator, options...).Dispatch(action)

	logger.Info("HTTP_OUT: Фильтр применён",
		zap.String("action", name),
		zap.String("location", target.String()),
		zap.Duration("ms", time.Since(start)))
}

func (h *DashboardHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.service.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Health check не пройден", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", serviceName),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", serviceName),
		toPayload("time", h.now().UTC().Format(time.RFC3339)),
	)
}

// toggles need a tag; the set-* actions treat "" as clear
func validateAction(action controller.Action) error {
	switch a := action.(type) {
	case controller.ToggleStatus:
		if a.Status == "" {
			return service.NewValidationError("value", "нужен статус")
		}
	case controller.TogglePriority:
		if a.Priority == "" {
			return service.NewValidationError("value", "нужен приоритет")
		}
	}
	return nil
}

func filterOptions() dto.FilterOptions {
	ranges := make([]string, 0, len(filter.DateRanges()))
	for _, r := range filter.DateRanges() {
		ranges = append(ranges, string(r))
	}
	return dto.FilterOptions{
		Statuses:   task.Statuses(),
		Priorities: task.Priorities(),
		DateRanges: ranges,
		Actions:    controller.ActionNames(),
	}
}
