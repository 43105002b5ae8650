package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	UUID        uuid.UUID  `json:"uuid" db:"uuid" yaml:"uuid"`
	Title       string     `json:"title" db:"title" yaml:"title"`
	Description string     `json:"description" db:"description" yaml:"description"`
	Status      Status     `json:"status" db:"status" yaml:"status"`
	Priority    Priority   `json:"priority" db:"priority" yaml:"priority"`
	AssigneeID  string     `json:"assignee_id,omitempty" db:"assignee_id" yaml:"assignee_id"`
	DueTime     time.Time  `json:"due_time" db:"due_time" yaml:"due_time"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" yaml:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

type Status string
type Priority string

const StatusTodo Status = "todo"
const StatusInProgress Status = "in_progress"
const StatusBlocked Status = "blocked"
const StatusDone Status = "done"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"
const PriorityUrgent Priority = "urgent"

// Statuses lists the statuses the dashboard renders, in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

func (s Status) Known() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

func (p Priority) Known() bool {
	for _, known := range Priorities() {
		if p == known {
			return true
		}
	}
	return false
}
