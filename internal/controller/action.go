package controller

import (
	"errors"
	"fmt"

	"taskDashboard/internal/filter"
	"taskDashboard/internal/filter/query"
	"taskDashboard/internal/models/task"
)

var ErrUnknownAction = errors.New("unknown filter action")

// Action is one filter mutation. The set of actions is closed.
type Action interface {
	Name() string
	isAction()
}

type ToggleStatus struct {
	Status task.Status
}

type TogglePriority struct {
	Priority task.Priority
}

// SetAssignee with filter.AssigneeAll or "" clears the assignee filter.
type SetAssignee struct {
	UserID string
}

// SetDateRange with filter.DateRangeAllTime or "" clears the date filter.
type SetDateRange struct {
	Range filter.DateRange
}

// SetSearch stores Term verbatim; "" clears the search.
type SetSearch struct {
	Term string
}

// ClearAll drops every query key, filter or not.
type ClearAll struct{}

func (ToggleStatus) Name() string   { return "toggle-status" }
func (TogglePriority) Name() string { return "toggle-priority" }
func (SetAssignee) Name() string    { return "set-assignee" }
func (SetDateRange) Name() string   { return "set-date-range" }
func (SetSearch) Name() string      { return "set-search" }
func (ClearAll) Name() string       { return "clear" }

func (ToggleStatus) isAction()   {}
func (TogglePriority) isAction() {}
func (SetAssignee) isAction()    {}
func (SetDateRange) isAction()   {}
func (SetSearch) isAction()      {}
func (ClearAll) isAction()       {}

// ParseAction builds an action from its route name and a raw value.
func ParseAction(name, value string) (Action, error) {
	switch name {
	case ToggleStatus{}.Name():
		return ToggleStatus{Status: task.Status(value)}, nil
	case TogglePriority{}.Name():
		return TogglePriority{Priority: task.Priority(value)}, nil
	case SetAssignee{}.Name():
		return SetAssignee{UserID: value}, nil
	case SetDateRange{}.Name():
		return SetDateRange{Range: filter.DateRange(value)}, nil
	case SetSearch{}.Name():
		return SetSearch{Term: value}, nil
	case ClearAll{}.Name():
		return ClearAll{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// ActionNames lists every action route name.
func ActionNames() []string {
	return []string{
		ToggleStatus{}.Name(),
		TogglePriority{}.Name(),
		SetAssignee{}.Name(),
		SetDateRange{}.Name(),
		SetSearch{}.Name(),
		ClearAll{}.Name(),
	}
}

// Reduce computes the address that follows current once action is applied.
// The result always points at basePath. Reduce has no side effects.
func Reduce(current query.Address, basePath string, action Action) query.Address {
	q := current.Query

	var update filter.Update
	switch a := action.(type) {
	case ClearAll:
		return query.Address{Path: basePath}
	case ToggleStatus:
		next := filter.Decode(q).Status.Toggle(a.Status)
		update = filter.Assign(filter.KeyStatus, next.Join())
	case TogglePriority:
		next := filter.Decode(q).Priority.Toggle(a.Priority)
		update = filter.Assign(filter.KeyPriority, next.Join())
	case SetAssignee:
		update = filter.Assign(filter.KeyAssignedTo, a.UserID)
	case SetDateRange:
		update = filter.Assign(filter.KeyDateRange, string(a.Range))
	case SetSearch:
		update = filter.Assign(filter.KeySearch, a.Term)
	default:
		return query.Address{Path: basePath, Query: filter.Encode(q)}
	}

	return query.Address{Path: basePath, Query: filter.Encode(q, update)}
}
