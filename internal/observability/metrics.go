package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the API server and the console.
type Metrics struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorTotal      *prometheus.CounterVec
	forcedLogouts   prometheus.Counter
	guardDecisions  *prometheus.CounterVec
}

// NewMetrics creates collectors registered on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resistance_admin_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resistance_admin_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resistance_admin_http_errors_total",
			Help: "HTTP errors by route, method and error code.",
		}, []string{"path", "method", "code"}),
		forcedLogouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resistance_admin_forced_logouts_total",
			Help: "Sessions terminated after an unauthorized API response.",
		}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resistance_admin_guard_decisions_total",
			Help: "Navigation guard outcomes by guard and outcome.",
		}, []string{"guard", "outcome"}),
	}
	m.registry.MustRegister(m.requestTotal, m.requestDuration, m.errorTotal, m.forcedLogouts, m.guardDecisions)
	return m
}

// Registry exposes the underlying registry for scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorTotal.WithLabelValues(path, method, code).Inc()
}

// RecordForcedLogout counts a session torn down by a 401.
func (m *Metrics) RecordForcedLogout() {
	if m == nil {
		return
	}
	m.forcedLogouts.Inc()
}

// RecordGuardDecision counts a navigation guard outcome.
func (m *Metrics) RecordGuardDecision(guard, outcome string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(guard, outcome).Inc()
}

// ForcedLogouts exposes the forced logout counter for inspection.
func (m *Metrics) ForcedLogouts() prometheus.Counter {
	return m.forcedLogouts
}

// GuardDecisions exposes the guard counter for one guard and outcome.
func (m *Metrics) GuardDecisions(guard, outcome string) prometheus.Counter {
	return m.guardDecisions.WithLabelValues(guard, outcome)
}
