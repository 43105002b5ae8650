package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"taskDashboard/internal/models/task"
)

var ErrInvalidSeed = errors.New("invalid seed task")

// TaskRepository is the read side the dashboard needs. Tasks are written by
// another service; Seed only loads fixtures.
type TaskRepository interface {
	HealthCheck(ctx context.Context) error
	List(ctx context.Context, criteria Criteria) ([]*task.Task, error)
	Seed(ctx context.Context, tasks ...*task.Task) error
}

// Criteria is a resolved filter. Empty fields do not constrain the result.
// Any due bound excludes tasks without a due time.
type Criteria struct {
	Statuses   []task.Status
	Priorities []task.Priority
	AssigneeID string
	DueFrom    *time.Time // включительно
	DueTo      *time.Time // не включительно
	Search     string
}

// Matches reports whether t passes every constraint. The postgres
// repository expresses the same rules in SQL.
func (c Criteria) Matches(t *task.Task) bool {
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, t.Status) {
		return false
	}
	if len(c.Priorities) > 0 && !slices.Contains(c.Priorities, t.Priority) {
		return false
	}
	if c.AssigneeID != "" && t.AssigneeID != c.AssigneeID {
		return false
	}
	if (c.DueFrom != nil || c.DueTo != nil) && t.DueTime.IsZero() {
		return false
	}
	if c.DueFrom != nil && t.DueTime.Before(*c.DueFrom) {
		return false
	}
	if c.DueTo != nil && !t.DueTime.Before(*c.DueTo) {
		return false
	}
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

// ValidateSeed rejects fixture rows that could never be listed correctly.
func ValidateSeed(t *task.Task) error {
	if t == nil {
		return ErrInvalidSeed
	}
	if t.Title == "" {
		return fmt.Errorf("%w %s: пустое название", ErrInvalidSeed, t.UUID)
	}
	return nil
}
