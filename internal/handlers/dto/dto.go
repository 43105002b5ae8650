package dto

import (
	"time"

	"taskDashboard/internal/models/task"

	"github.com/google/uuid"
)

type TaskResponse struct {
	UUID        uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	IsOverdue   bool       `json:"is_overdue"`
}

func FromTask(t *task.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		UUID:        t.UUID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if !t.DueTime.IsZero() {
		due := t.DueTime
		resp.DueDate = &due
		resp.IsOverdue = t.Status != task.StatusDone && due.Before(now)
	}
	return resp
}

func FromTaskList(tasks []*task.Task, now time.Time) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t, now)
	}
	return result
}

// FilterOptions lists what the filter bar can offer.
type FilterOptions struct {
	Statuses   []task.Status   `json:"statuses"`
	Priorities []task.Priority `json:"priorities"`
	DateRanges []string        `json:"date_ranges"`
	Actions    []string        `json:"actions"`
}
