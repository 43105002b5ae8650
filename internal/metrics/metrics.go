package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "taskdash"

// Metrics owns its registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	navigations   *prometheus.CounterVec
	listDuration  prometheus.Histogram
	activeFilters prometheus.Histogram
	overdueTasks  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_navigations_total",
			Help:      "Filter navigation commands issued, by action.",
		}, []string{"action"}),
		listDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_list_duration_seconds",
			Help:      "Time spent listing tasks for a filtered dashboard view.",
			Buckets:   prometheus.DefBuckets,
		}),
		activeFilters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "active_filters",
			Help:      "Number of active filter fields per dashboard view.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}),
		overdueTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_tasks",
			Help:      "Open tasks past their due time at the last check.",
		}),
	}

	m.registry.MustRegister(
		m.navigations,
		m.listDuration,
		m.activeFilters,
		m.overdueTasks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveNavigation(action string) {
	m.navigations.WithLabelValues(action).Inc()
}

func (m *Metrics) ObserveList(d time.Duration, active int) {
	m.listDuration.Observe(d.Seconds())
	m.activeFilters.Observe(float64(active))
}

func (m *Metrics) SetOverdue(n int) {
	m.overdueTasks.Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
