package worker

import (
	"context"
	"fmt"
	"time"

	"taskDashboard/internal/filter"
	"taskDashboard/internal/logger"
	"taskDashboard/internal/models/task"
	"taskDashboard/internal/repository"
	"taskDashboard/internal/service"

	"go.uber.org/zap"
)

const defaultInterval = 5 * time.Minute

// Gauge receives the overdue count after each check.
type Gauge interface {
	SetOverdue(n int)
}

// OverdueWorker periodically counts open tasks past their due time. Tasks
// are never modified; the count only feeds the gauge.
type OverdueWorker struct {
	repo     service.TaskRepository
	gauge    Gauge
	interval time.Duration
	now      func() time.Time
}

func NewOverdueWorker(repo service.TaskRepository, gauge Gauge, interval time.Duration) *OverdueWorker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &OverdueWorker{
		repo:     repo,
		gauge:    gauge,
		interval: interval,
		now:      time.Now,
	}
}

// Start checks once right away, then on every tick until ctx is done.
func (w *OverdueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.run(ctx)
	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *OverdueWorker) run(ctx context.Context) {
	logger.Debug("Worker: Фоновая проверка задач на просроченность", zap.Time("started_at", w.now()))
	if _, err := w.Check(ctx); err != nil && ctx.Err() == nil {
		logger.Warn("Worker: ошибка получения задач", zap.Error(err))
	}
}

func (w *OverdueWorker) Check(ctx context.Context) (int, error) {
	start := time.Now()

	_, dueTo, _ := service.ResolveDateRange(filter.DateRangeOverdue, w.now())
	tasks, err := w.repo.List(ctx, repository.Criteria{DueTo: dueTo})
	if err != nil {
		return 0, fmt.Errorf("получение просроченных задач: %w", err)
	}

	overdueCount := 0
	for _, t := range tasks {
		if t.Status != task.StatusDone {
			overdueCount++
		}
	}
	if w.gauge != nil {
		w.gauge.SetOverdue(overdueCount)
	}

	logger.Info(
		"Worker: Завершение проверки задач",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(tasks)),
		zap.Int("overdue", overdueCount),
	)
	return overdueCount, nil
}
