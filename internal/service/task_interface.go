package service

import (
	"context"
	"time"

	"taskDashboard/internal/models/task"
	"taskDashboard/internal/repository"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	List(context.Context, repository.Criteria) ([]*task.Task, error)
}

// Recorder receives one observation per listing.
type Recorder interface {
	ObserveList(d time.Duration, active int)
}
