package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskDashboard/internal/config"
	"taskDashboard/internal/fixtures"
	"taskDashboard/internal/handlers"
	"taskDashboard/internal/logger"
	"taskDashboard/internal/metrics"
	"taskDashboard/internal/middleware"
	"taskDashboard/internal/navigation"
	"taskDashboard/internal/repository"
	"taskDashboard/internal/repository/task/inmemory"
	"taskDashboard/internal/repository/task/postgres"
	"taskDashboard/internal/service"
	"taskDashboard/internal/worker"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "task-dashboard"

type App struct {
	config     *config.Config
	server     *http.Server
	router     http.Handler
	repository repository.TaskRepository
	metrics    *metrics.Metrics
	worker     *worker.OverdueWorker
	shutdowns  []func() // функции для graceful shutdown, в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: Завершение работы логгирования...")
		logger.Sync()
	})

	mode, err := navigation.ParseMode(a.config.Navigation.Mode)
	if err != nil {
		return fmt.Errorf("navigation.mode: %w", err)
	}

	if err := a.initRepository(ctx); err != nil {
		return err
	}
	if err := a.seed(ctx); err != nil {
		return err
	}

	a.metrics = metrics.New()
	dashboard := service.NewDashboard(a.repository, service.WithRecorder(a.metrics))
	handler := handlers.NewDashboardHandler(dashboard,
		handlers.WithBasePath(a.config.Server.BasePath),
		handlers.WithMode(mode),
		handlers.WithRecorder(a.metrics),
	)

	if a.config.Worker.Enabled {
		a.worker = worker.NewOverdueWorker(a.repository, a.metrics, a.config.Worker.OverdueInterval)
	}

	a.router = a.newRouter(handler)
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("App: Инициализация завершена",
		zap.String("repository", a.config.Repository.Type),
		zap.String("base_path", handler.BasePath()),
		zap.Stringer("navigation_mode", mode))
	return nil
}

func (a *App) initRepository(ctx context.Context) error {
	switch a.config.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return fmt.Errorf("подключение к postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)

		if err := storage.Migrate(ctx); err != nil {
			return fmt.Errorf("миграции: %w", err)
		}
		a.repository = storage
	default:
		a.repository = inmemory.NewTaskStorage()
	}
	return nil
}

func (a *App) seed(ctx context.Context) error {
	path := a.config.Repository.SeedFile
	if path == "" {
		return nil
	}

	tasks, err := fixtures.Load(path, time.Now())
	if err != nil {
		return err
	}
	if err := a.repository.Seed(ctx, tasks...); err != nil {
		return fmt.Errorf("загрузка фикстур: %w", err)
	}
	return nil
}

func (a *App) newRouter(handler *handlers.DashboardHandler) http.Handler {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	if a.config.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(a.config.Server.RequestTimeout))
	}
	r.Use(middleware.RateLimit(a.config.RateLimit.RPM))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIdHeader},
		ExposedHeaders:   []string{"Location", handlers.NavigationModeHeader, middleware.RequestIdHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	handler.Routes(r)
	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", a.metrics.Handler())

	return otelhttp.NewHandler(r, serviceName)
}

// Handler is the full middleware chain. Init must run first.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		if err := a.Init(ctx); err != nil {
			a.Shutdown()
			return err
		}
	}
	defer a.Shutdown()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	if a.worker != nil {
		g.Go(func() error {
			a.worker.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("App: Остановка сервера...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("App: Сервер остановлен")
		return nil
	})

	return g.Wait()
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
