package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskDashboard/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveNavigation(t *testing.T) {
	m := metrics.New()

	m.ObserveNavigation("toggle-status")
	m.ObserveNavigation("toggle-status")
	m.ObserveNavigation("clear")

	// one series per action label
	count, err := testutil.GatherAndCount(m.Registry(), "taskdash_filter_navigations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveNavigation("set-search")
	m.ObserveList(15*time.Millisecond, 2)
	m.SetOverdue(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `taskdash_filter_navigations_total{action="set-search"} 1`)
	assert.Contains(t, body, "taskdash_task_list_duration_seconds_count 1")
	assert.Contains(t, body, "taskdash_active_filters_sum 2")
	assert.Contains(t, body, "taskdash_overdue_tasks 3")
}
