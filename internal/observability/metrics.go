package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render outcomes recorded per view.
const (
	OutcomeRendered = "rendered"
	OutcomeEmpty    = "empty"
	OutcomeHalted   = "halted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// Metrics holds the Prometheus collectors for the dashboard.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: route, method, status
	HTTPDuration *prometheus.HistogramVec // labels: route
	Renders      *prometheus.CounterVec   // labels: view, outcome
	RowsLoaded   *prometheus.GaugeVec     // labels: table

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	reg := prometheus.NewRegistry()
	return newMetrics(reg, reg)
}

func newMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bikeshare",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bikeshare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bikeshare",
			Name:      "renders_total",
			Help:      "Dashboard render cycles by view and outcome.",
		}, []string{"view", "outcome"}),
		RowsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bikeshare",
			Name:      "rows_loaded",
			Help:      "Rows held in memory per table.",
		}, []string{"table"}),
		gatherer: gatherer,
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Renders, m.RowsLoaded)
	return m
}

// RecordRender counts one render cycle for a view.
func (m *Metrics) RecordRender(view, outcome string) {
	m.Renders.WithLabelValues(view, outcome).Inc()
}

// Handler exposes the registry these metrics were registered with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
