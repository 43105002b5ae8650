package controller_test

import (
	"testing"

	"taskDashboard/internal/controller"
	"taskDashboard/internal/filter"
	"taskDashboard/internal/filter/query"
	"taskDashboard/internal/models/task"
	"taskDashboard/internal/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, start string, options ...controller.Option) (*controller.Controller, *navigation.History) {
	t.Helper()
	h := navigation.NewHistory(query.ParseAddress(start))
	return controller.New(h, h, options...), h
}

func TestController_ToggleStatusScenario(t *testing.T) {
	c, h := newSession(t, "/dashboard")

	c.ToggleStatus(task.StatusDone)
	assert.Equal(t, "/dashboard?status=done", h.Current().String())

	c.ToggleStatus(task.StatusBlocked)
	assert.Equal(t, "/dashboard?status=done,blocked", h.Current().String())

	c.ToggleStatus(task.StatusDone)
	assert.Equal(t, "/dashboard?status=blocked", h.Current().String())

	c.ToggleStatus(task.StatusBlocked)
	assert.Equal(t, "/dashboard", h.Current().String())
}

func TestController_ClearAllScenario(t *testing.T) {
	c, h := newSession(t, "/dashboard?status=done,blocked&search=api")

	c.ClearAll()

	assert.Equal(t, "/dashboard", h.Current().String())
	assert.Equal(t, 0, h.Current().Query.Len())

	// unconditional, even from an empty address or with unrelated keys
	h.Navigate(query.ParseAddress("/dashboard?view=board"), navigation.ModeReplace)
	c.ClearAll()
	c.ClearAll()
	assert.Equal(t, "/dashboard", h.Current().String())
}

func TestController_SetAssignedToSentinel(t *testing.T) {
	c, h := newSession(t, "/dashboard?assignedTo=u123")

	c.SetAssignedTo(filter.AssigneeAll)
	assert.False(t, h.Current().Query.Has(filter.KeyAssignedTo))

	// already absent stays absent
	c.SetAssignedTo(filter.AssigneeAll)
	assert.False(t, h.Current().Query.Has(filter.KeyAssignedTo))

	c.SetAssignedTo("u456")
	assert.Equal(t, "u456", c.Filters().AssignedTo)

	c.SetAssignedTo("")
	assert.False(t, h.Current().Query.Has(filter.KeyAssignedTo))
}

func TestController_SetDateRangeIdempotentClear(t *testing.T) {
	starts := []string{
		"/dashboard",
		"/dashboard?dateRange=today",
		"/dashboard?dateRange=this_week&status=done",
		"/dashboard?dateRange=all_time",
	}

	for _, start := range starts {
		t.Run(start, func(t *testing.T) {
			c, h := newSession(t, start)

			c.SetDateRange(filter.DateRangeAllTime)
			once := h.Current()
			assert.False(t, once.Query.Has(filter.KeyDateRange))

			c.SetDateRange(filter.DateRangeAllTime)
			assert.True(t, once.Equal(h.Current()))
		})
	}
}

func TestController_SetSearchVerbatim(t *testing.T) {
	c, h := newSession(t, "/dashboard")

	c.SetSearch("  API, Gateway ")
	assert.Equal(t, "  API, Gateway ", c.Filters().Search)

	reparsed := query.ParseAddress(h.Current().String())
	assert.Equal(t, "  API, Gateway ", filter.Decode(reparsed.Query).Search)

	c.SetSearch("")
	assert.Equal(t, "/dashboard", h.Current().String())
}

func TestController_ToggleSymmetry(t *testing.T) {
	starts := []string{
		"/dashboard",
		"/dashboard?status=done",
		"/dashboard?status=todo,blocked&priority=high",
		"/dashboard?status=blocked,done",
	}

	for _, start := range starts {
		t.Run(start, func(t *testing.T) {
			c, h := newSession(t, start)
			before := h.Current().Query

			c.ToggleStatus(task.StatusDone)
			c.ToggleStatus(task.StatusDone)

			after := h.Current().Query
			beforeValue, hadBefore := before.Lookup(filter.KeyStatus)
			afterValue, hasAfter := after.Lookup(filter.KeyStatus)

			assert.Equal(t, hadBefore, hasAfter)
			assert.True(t, filter.Decode(before).Status.Equal(filter.Decode(after).Status),
				"before %q after %q", beforeValue, afterValue)
		})
	}
}

func TestController_FieldIndependence(t *testing.T) {
	start := "/dashboard?status=done&priority=low&assignedTo=u1&dateRange=today&search=api"

	actions := []struct {
		action controller.Action
		key    string
	}{
		{controller.ToggleStatus{Status: task.StatusBlocked}, filter.KeyStatus},
		{controller.TogglePriority{Priority: task.PriorityHigh}, filter.KeyPriority},
		{controller.SetAssignee{UserID: "u2"}, filter.KeyAssignedTo},
		{controller.SetDateRange{Range: filter.DateRangeOverdue}, filter.KeyDateRange},
		{controller.SetSearch{Term: "ui"}, filter.KeySearch},
	}

	for _, tt := range actions {
		t.Run(tt.action.Name(), func(t *testing.T) {
			c, h := newSession(t, start)
			before := h.Current().Query

			c.Dispatch(tt.action)

			after := h.Current().Query
			for _, key := range filter.Keys() {
				if key == tt.key {
					assert.NotEqual(t, before.Get(key), after.Get(key))
					continue
				}
				assert.Equal(t, before.Get(key), after.Get(key), "key %s changed", key)
			}
		})
	}
}

func TestController_UnknownTagsAccepted(t *testing.T) {
	c, h := newSession(t, "/dashboard")

	c.ToggleStatus("archived")
	c.TogglePriority("p0")
	c.SetDateRange("last_century")

	assert.Equal(t, "/dashboard?status=archived&priority=p0&dateRange=last_century", h.Current().String())
}

func TestController_NavigatesToBasePath(t *testing.T) {
	c, h := newSession(t, "/somewhere/else?status=done", controller.WithBasePath("/board"))

	c.TogglePriority(task.PriorityUrgent)

	assert.Equal(t, "/board?status=done&priority=urgent", h.Current().String())
}

func TestController_ModePushAddsHistoryEntries(t *testing.T) {
	c, h := newSession(t, "/dashboard", controller.WithMode(navigation.ModePush))

	c.ToggleStatus(task.StatusDone)
	c.SetSearch("api")
	require.Equal(t, 3, h.Len())

	require.True(t, h.Back())
	assert.Equal(t, "/dashboard?status=done", h.Current().String())
}

func TestController_DefaultModeReplaces(t *testing.T) {
	c, h := newSession(t, "/dashboard")

	c.ToggleStatus(task.StatusDone)
	c.SetSearch("api")

	assert.Equal(t, 1, h.Len())
}

func TestController_FiltersReadsLiveAddress(t *testing.T) {
	c, h := newSession(t, "/dashboard?status=done")
	assert.Equal(t, 1, c.Filters().Status.Len())

	// the host changes the address behind the controller's back
	h.Navigate(query.ParseAddress("/dashboard?priority=high"), navigation.ModeReplace)

	m := c.Filters()
	assert.Equal(t, 0, m.Status.Len())
	assert.True(t, m.Priority.Has(task.PriorityHigh))
}

func TestController_AddressFollowsNavigation(t *testing.T) {
	c, _ := newSession(t, "/dashboard?search=x&page=2")
	assert.Equal(t, "/dashboard?search=x&page=2", c.Address().String())

	c.ToggleStatus(task.StatusDone)
	assert.Equal(t, "/dashboard?search=x&page=2&status=done", c.Address().String())
}

func TestController_Observer(t *testing.T) {
	var names []string
	var targets []string
	c, _ := newSession(t, "/dashboard", controller.WithObserver(func(a controller.Action, next query.Address) {
		names = append(names, a.Name())
		targets = append(targets, next.String())
	}))

	c.ToggleStatus(task.StatusDone)
	c.ClearAll()

	assert.Equal(t, []string{"toggle-status", "clear"}, names)
	assert.Equal(t, []string{"/dashboard?status=done", "/dashboard"}, targets)
}

type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) Navigate(addr query.Address, mode navigation.Mode) {
	m.Called(addr.String(), mode)
}

func TestController_IssuesOneCommandPerAction(t *testing.T) {
	nav := &MockNavigator{}
	nav.On("Navigate", "/dashboard?search=api", navigation.ModeReplace).Once()

	location := controller.LocationFunc(func() query.Address {
		return query.ParseAddress("/dashboard")
	})
	c := controller.New(location, nav)

	c.SetSearch("api")

	nav.AssertExpectations(t)
}
