package service

import (
	"time"

	"taskDashboard/internal/filter"
)

// ResolveDateRange turns a preset into a due-time window [from, to) in now's
// location. Weeks start on Monday. A nil bound is open. ok is false for an
// unknown preset, and for "" or all_time, which carry no constraint.
func ResolveDateRange(preset filter.DateRange, now time.Time) (from, to *time.Time, ok bool) {
	day := startOfDay(now)
	window := func(start time.Time, end time.Time) (*time.Time, *time.Time, bool) {
		return &start, &end, true
	}

	switch preset {
	case filter.DateRangeToday:
		return window(day, day.AddDate(0, 0, 1))
	case filter.DateRangeTomorrow:
		return window(day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	case filter.DateRangeThisWeek:
		monday := startOfWeek(day)
		return window(monday, monday.AddDate(0, 0, 7))
	case filter.DateRangeNextWeek:
		monday := startOfWeek(day).AddDate(0, 0, 7)
		return window(monday, monday.AddDate(0, 0, 7))
	case filter.DateRangeThisMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return window(first, first.AddDate(0, 1, 0))
	case filter.DateRangeOverdue:
		return nil, &now, true
	default:
		return nil, nil, false
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7 // понедельник = 0
	return day.AddDate(0, 0, -offset)
}
