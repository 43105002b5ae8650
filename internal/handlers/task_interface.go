package handlers

import (
	"context"

	"taskDashboard/internal/filter"
	"taskDashboard/internal/models/task"
)

type DashboardService interface {
	ListTasks(context.Context, filter.Model) ([]*task.Task, error)
	HealthCheck(context.Context) error
}

// NavigationRecorder counts applied filter actions.
type NavigationRecorder interface {
	ObserveNavigation(action string)
}
