package filter

import (
	"taskDashboard/internal/filter/query"
	"taskDashboard/internal/models/task"
)

// Update is one field change for Encode. An empty or sentinel Value removes
// the key.
type Update struct {
	Key   string
	Value string
}

func Assign(key, value string) Update {
	return Update{Key: key, Value: value}
}

func Remove(key string) Update {
	return Update{Key: key}
}

// Decode reads the filter out of a query. Missing or malformed keys decode
// to the inactive value. Decode also normalises sentinels: a stored
// assignedTo=all or dateRange=all_time decodes as inactive, not verbatim.
func Decode(q query.Values) Model {
	m := Model{
		Status:     splitSet[task.Status](q.Get(KeyStatus)),
		Priority:   splitSet[task.Priority](q.Get(KeyPriority)),
		AssignedTo: q.Get(KeyAssignedTo),
		DateRange:  DateRange(q.Get(KeyDateRange)),
		Search:     q.Get(KeySearch),
	}
	return m.Normalize()
}

// Encode returns a copy of current with updates applied. Keys that are not
// updated pass through, except that the result is always clean: one value
// per key, no empty values, no sentinels, no empty or repeated tags.
func Encode(current query.Values, updates ...Update) query.Values {
	var next query.Values
	for _, key := range current.Keys() {
		if value := normalizeValue(key, current.Get(key)); value != "" {
			next.Set(key, value)
		}
	}

	for _, u := range updates {
		value := normalizeValue(u.Key, u.Value)
		if value == "" {
			next.Del(u.Key)
			continue
		}
		next.Set(u.Key, value)
	}
	return next
}

// EncodeModel encodes m from an empty query.
func EncodeModel(m Model) query.Values {
	return Encode(query.Values{}, UpdatesFor(m)...)
}

// UpdatesFor lists one update per filter key describing m.
func UpdatesFor(m Model) []Update {
	return []Update{
		Assign(KeyStatus, m.Status.Join()),
		Assign(KeyPriority, m.Priority.Join()),
		Assign(KeyAssignedTo, m.AssignedTo),
		Assign(KeyDateRange, string(m.DateRange)),
		Assign(KeySearch, m.Search),
	}
}

func normalizeValue(key, value string) string {
	switch key {
	case KeyStatus, KeyPriority:
		return splitSet[string](value).Join()
	case KeyAssignedTo:
		if value == AssigneeAll {
			return ""
		}
	case KeyDateRange:
		if DateRange(value) == DateRangeAllTime {
			return ""
		}
	}
	return value
}
