package controller_test

import (
	"errors"
	"testing"

	"taskDashboard/internal/controller"
	"taskDashboard/internal/filter"
	"taskDashboard/internal/filter/query"
	"taskDashboard/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_IsPure(t *testing.T) {
	current := query.ParseAddress("/dashboard?status=done&search=api")

	next := controller.Reduce(current, "/dashboard", controller.ToggleStatus{Status: task.StatusBlocked})

	assert.Equal(t, "/dashboard?status=done,blocked&search=api", next.String())
	assert.Equal(t, "/dashboard?status=done&search=api", current.String())
}

func TestReduce_HealsUntouchedKeys(t *testing.T) {
	current := query.ParseAddress("/dashboard?search=&status=done,done&assignedTo=all")

	next := controller.Reduce(current, "/dashboard", controller.TogglePriority{Priority: task.PriorityHigh})

	assert.Equal(t, "/dashboard?status=done&priority=high", next.String())
}

func TestReduce_ToggleRemovesEveryOccurrence(t *testing.T) {
	current := query.ParseAddress("/dashboard?status=done,blocked,done")

	next := controller.Reduce(current, "/dashboard", controller.ToggleStatus{Status: task.StatusDone})

	assert.Equal(t, "/dashboard?status=blocked", next.String())
}

func TestReduce_NilActionOnlyHeals(t *testing.T) {
	current := query.ParseAddress("/elsewhere?status=done&search=")

	next := controller.Reduce(current, "/dashboard", nil)

	assert.Equal(t, "/dashboard?status=done", next.String())
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  controller.Action
	}{
		{"toggle-status", "done", controller.ToggleStatus{Status: task.StatusDone}},
		{"toggle-priority", "high", controller.TogglePriority{Priority: task.PriorityHigh}},
		{"set-assignee", "all", controller.SetAssignee{UserID: filter.AssigneeAll}},
		{"set-date-range", "today", controller.SetDateRange{Range: filter.DateRangeToday}},
		{"set-search", " api ", controller.SetSearch{Term: " api "}},
		{"clear", "ignored", controller.ClearAll{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := controller.ParseAction(tt.name, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.Name())
		})
	}

	assert.Len(t, controller.ActionNames(), len(tests))
}

func TestParseAction_Unknown(t *testing.T) {
	_, err := controller.ParseAction("explode", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, controller.ErrUnknownAction))
}
