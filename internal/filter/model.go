// Package filter maps the dashboard filter between its structured form and
// the flat query carried in the address.
//
// Decode and Encode are total: unknown tags, unknown date presets and any
// search text are accepted as-is. Deciding what an unknown value means is
// left to whoever lists the tasks.
package filter

import "taskDashboard/internal/models/task"

// Query keys. Names are case-sensitive.
const (
	KeyStatus     = "status"
	KeyPriority   = "priority"
	KeyAssignedTo = "assignedTo"
	KeyDateRange  = "dateRange"
	KeySearch     = "search"
)

// Keys lists the filter keys in the order EncodeModel writes them.
func Keys() []string {
	return []string{KeyStatus, KeyPriority, KeyAssignedTo, KeyDateRange, KeySearch}
}

const listSeparator = ","

// AssigneeAll is the assignee picker's "everyone" entry. It clears the filter.
const AssigneeAll = "all"

type DateRange string

const (
	DateRangeToday     DateRange = "today"
	DateRangeTomorrow  DateRange = "tomorrow"
	DateRangeThisWeek  DateRange = "this_week"
	DateRangeNextWeek  DateRange = "next_week"
	DateRangeThisMonth DateRange = "this_month"
	DateRangeOverdue   DateRange = "overdue"

	// DateRangeAllTime means no date filter and is never written to a query.
	DateRangeAllTime DateRange = "all_time"
)

func DateRanges() []DateRange {
	return []DateRange{
		DateRangeToday,
		DateRangeTomorrow,
		DateRangeThisWeek,
		DateRangeNextWeek,
		DateRangeThisMonth,
		DateRangeOverdue,
		DateRangeAllTime,
	}
}

func (d DateRange) Known() bool {
	for _, known := range DateRanges() {
		if d == known {
			return true
		}
	}
	return false
}

// Model is the structured filter. Empty sets and empty strings are inactive.
type Model struct {
	Status     Set[task.Status]   `json:"status"`
	Priority   Set[task.Priority] `json:"priority"`
	AssignedTo string             `json:"assignedTo,omitempty"`
	DateRange  DateRange          `json:"dateRange,omitempty"`
	Search     string             `json:"search,omitempty"`
}

// Normalize folds the sentinels into the inactive value.
func (m Model) Normalize() Model {
	if m.AssignedTo == AssigneeAll {
		m.AssignedTo = ""
	}
	if m.DateRange == DateRangeAllTime {
		m.DateRange = ""
	}
	m.Status = NewSet(m.Status.items...)
	m.Priority = NewSet(m.Priority.items...)
	return m
}

// Equal compares two models after normalisation, ignoring tag order.
func (m Model) Equal(other Model) bool {
	a, b := m.Normalize(), other.Normalize()
	return a.Status.Equal(b.Status) &&
		a.Priority.Equal(b.Priority) &&
		a.AssignedTo == b.AssignedTo &&
		a.DateRange == b.DateRange &&
		a.Search == b.Search
}

// ActiveCount is the number of active fields, used for the filter badge.
func (m Model) ActiveCount() int {
	n := m.Normalize()
	count := 0
	if n.Status.Len() > 0 {
		count++
	}
	if n.Priority.Len() > 0 {
		count++
	}
	if n.AssignedTo != "" {
		count++
	}
	if n.DateRange != "" {
		count++
	}
	if n.Search != "" {
		count++
	}
	return count
}

func (m Model) IsEmpty() bool {
	return m.ActiveCount() == 0
}
