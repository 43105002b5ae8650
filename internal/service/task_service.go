package service

import (
	"context"
	"fmt"
	"time"

	"taskDashboard/internal/filter"
	"taskDashboard/internal/logger"
	"taskDashboard/internal/models/task"
	"taskDashboard/internal/repository"

	"go.uber.org/zap"
)

// Dashboard answers listing requests for a decoded filter. The codec accepts
// any value; deciding what an unknown value means happens here.
type Dashboard struct {
	repo     TaskRepository
	now      func() time.Time
	recorder Recorder
}

type DashboardOption func(*Dashboard)

func WithClock(now func() time.Time) DashboardOption {
	return func(d *Dashboard) {
		if now != nil {
			d.now = now
		}
	}
}

func WithRecorder(recorder Recorder) DashboardOption {
	return func(d *Dashboard) {
		d.recorder = recorder
	}
}

func NewDashboard(repo TaskRepository, options ...DashboardOption) *Dashboard {
	d := &Dashboard{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Criteria resolves m against the current time. Unknown status and priority
// tags are kept and match nothing. An unknown date preset is dropped.
func (d *Dashboard) Criteria(m filter.Model) repository.Criteria {
	m = m.Normalize()
	criteria := repository.Criteria{
		Statuses:   m.Status.Items(),
		Priorities: m.Priority.Items(),
		AssigneeID: m.AssignedTo,
		Search:     m.Search,
	}

	if m.DateRange != "" {
		from, to, ok := ResolveDateRange(m.DateRange, d.now())
		if !ok {
			logger.Warn("Service: Неизвестный период, фильтр по сроку пропущен",
				zap.String("dateRange", string(m.DateRange)))
		}
		criteria.DueFrom, criteria.DueTo = from, to
	}
	return criteria
}

func (d *Dashboard) ListTasks(ctx context.Context, m filter.Model) ([]*task.Task, error) {
	start := time.Now()

	tasks, err := d.repo.List(ctx, d.Criteria(m))
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	if d.recorder != nil {
		d.recorder.ObserveList(time.Since(start), m.ActiveCount())
	}
	logger.Debug("Service: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Int("active_filters", m.ActiveCount()))
	return tasks, nil
}

func (d *Dashboard) HealthCheck(ctx context.Context) error {
	if err := d.repo.HealthCheck(ctx); err != nil {
		return NewUnavailable(err)
	}
	return nil
}
