package filter_test

import (
	"encoding/json"
	"testing"

	"taskDashboard/internal/filter"
	"taskDashboard/internal/filter/query"
	"taskDashboard/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_EmptyQuery(t *testing.T) {
	m := filter.Decode(query.Values{})

	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Status.Len())
	assert.Equal(t, 0, m.Priority.Len())
	assert.Empty(t, m.AssignedTo)
	assert.Empty(t, m.DateRange)
	assert.Empty(t, m.Search)
}

func TestDecode_DuplicateTagsCollapse(t *testing.T) {
	m := filter.Decode(query.Parse("priority=low,low,high"))

	assert.Equal(t, []task.Priority{task.PriorityLow, task.PriorityHigh}, m.Priority.Items())
}

func TestDecode_PassesUnknownValuesThrough(t *testing.T) {
	m := filter.Decode(query.Parse("status=done,archived&dateRange=last_decade&assignedTo=u-42"))

	assert.Equal(t, []task.Status{task.StatusDone, "archived"}, m.Status.Items())
	assert.Equal(t, filter.DateRange("last_decade"), m.DateRange)
	assert.Equal(t, "u-42", m.AssignedTo)
}

func TestDecode_MalformedDegradesToInactive(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty status", "status="},
		{"only commas", "status=,,,"},
		{"bad escape", "search=%zz"},
		{"stored assignee sentinel", "assignedTo=all"},
		{"stored date sentinel", "dateRange=all_time"},
		{"wrong case key", "Status=done&SEARCH=api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, filter.Decode(query.Parse(tt.raw)).IsEmpty())
		})
	}
}

func TestDecode_SearchIsVerbatim(t *testing.T) {
	m := filter.Decode(query.Parse("search=+Fix%20Login,%20now+"))
	assert.Equal(t, " Fix Login, now ", m.Search)
}

func TestRoundTrip(t *testing.T) {
	models := []filter.Model{
		{},
		{Status: filter.NewSet(task.StatusDone)},
		{Status: filter.NewSet(task.StatusBlocked, task.StatusTodo), Priority: filter.NewSet(task.PriorityUrgent)},
		{AssignedTo: "u123"},
		{DateRange: filter.DateRangeThisWeek},
		{DateRange: filter.DateRangeAllTime},
		{AssignedTo: filter.AssigneeAll},
		{Search: "  Mixed Case, with commas & ampersands = signs  "},
		{
			Status:     filter.NewSet[task.Status]("done", "unknown_tag"),
			Priority:   filter.NewSet(task.PriorityLow, task.PriorityHigh),
			AssignedTo: "user@example.com",
			DateRange:  filter.DateRangeOverdue,
			Search:     "api",
		},
	}

	for _, m := range models {
		encoded := filter.EncodeModel(m)
		reparsed := query.Parse(encoded.Encode())
		decoded := filter.Decode(reparsed)

		assert.True(t, m.Normalize().Equal(decoded), "round trip of %q", encoded.Encode())
		assert.Equal(t, m.Normalize().Search, decoded.Search)
	}
}

func TestEncodeModel_OnlyActiveKeys(t *testing.T) {
	m := filter.Model{
		Status:     filter.NewSet(task.StatusDone),
		DateRange:  filter.DateRangeAllTime,
		AssignedTo: filter.AssigneeAll,
	}

	encoded := filter.EncodeModel(m)

	assert.Equal(t, "status=done", encoded.Encode())
	assert.False(t, encoded.Has(filter.KeyDateRange))
	assert.False(t, encoded.Has(filter.KeyAssignedTo))
}

func TestEncode_SetsAndRemoves(t *testing.T) {
	current := query.Parse("status=done&search=api")

	next := filter.Encode(current,
		filter.Assign(filter.KeyPriority, "high"),
		filter.Remove(filter.KeySearch),
	)

	assert.Equal(t, "status=done&priority=high", next.Encode())
	assert.Equal(t, "status=done&search=api", current.Encode(), "input must not change")
}

func TestEncode_SentinelsRemove(t *testing.T) {
	current := query.Parse("assignedTo=u123&dateRange=today&search=api")

	next := filter.Encode(current,
		filter.Assign(filter.KeyAssignedTo, filter.AssigneeAll),
		filter.Assign(filter.KeyDateRange, string(filter.DateRangeAllTime)),
		filter.Assign(filter.KeySearch, ""),
	)

	assert.Equal(t, 0, next.Len())
}

func TestEncode_HealsCurrentQuery(t *testing.T) {
	current := query.Parse("status=done,,done&status=todo&search=&assignedTo=all&dateRange=all_time&page=2&empty=")

	next := filter.Encode(current)

	assert.Equal(t, "status=done&page=2", next.Encode())
}

func TestEncode_KeepsForeignKeys(t *testing.T) {
	current := query.Parse("view=board&status=done")

	next := filter.Encode(current, filter.Assign(filter.KeyStatus, "done,blocked"))

	assert.Equal(t, "view=board&status=done,blocked", next.Encode())
}

func TestModel_ActiveCount(t *testing.T) {
	m := filter.Decode(query.Parse("status=done&priority=high&assignedTo=u1&dateRange=today&search=x"))
	assert.Equal(t, 5, m.ActiveCount())

	m.DateRange = filter.DateRangeAllTime
	assert.Equal(t, 4, m.ActiveCount())
}

func TestModel_JSON(t *testing.T) {
	m := filter.Decode(query.Parse("status=done,blocked&search=api"))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":["done","blocked"],"priority":[],"search":"api"}`, string(data))

	var back filter.Model
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equal(back))
}

func TestSet_Toggle(t *testing.T) {
	s := filter.NewSet(task.StatusDone)

	s = s.Toggle(task.StatusBlocked)
	assert.Equal(t, "done,blocked", s.Join())

	s = s.Toggle(task.StatusDone)
	assert.Equal(t, "blocked", s.Join())

	s = s.Toggle(task.StatusBlocked)
	assert.Equal(t, 0, s.Len())
}

func TestSet_EqualIgnoresOrder(t *testing.T) {
	a := filter.NewSet(task.PriorityLow, task.PriorityHigh)
	b := filter.NewSet(task.PriorityHigh, task.PriorityLow)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(filter.NewSet(task.PriorityLow)))
}
