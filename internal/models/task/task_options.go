package task

import (
	"time"

	"github.com/google/uuid"
)

type TaskOption func(*Task)

// New builds a task with a fresh id. Options with an empty value are skipped,
// so a fixture row with missing columns keeps the defaults.
func New(title string, options ...TaskOption) *Task {
	t := &Task{
		UUID:      uuid.New(),
		Title:     title,
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		CreatedAt: time.Now(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func WithDescription(description string) TaskOption {
	if description == "" {
		return nil
	}
	return func(task *Task) {
		task.Description = description
	}
}

func WithStatus(status Status) TaskOption {
	if status == "" {
		return nil
	}
	return func(task *Task) {
		task.Status = status
	}
}

func WithPriority(priority Priority) TaskOption {
	if priority == "" {
		return nil
	}
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithAssignee(userID string) TaskOption {
	if userID == "" {
		return nil
	}
	return func(task *Task) {
		task.AssigneeID = userID
	}
}

func WithDueTime(dueTime time.Time) TaskOption {
	if dueTime.IsZero() {
		return nil
	}
	return func(task *Task) {
		task.DueTime = dueTime
	}
}
