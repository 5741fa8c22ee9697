package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rainwise_web"

// Metrics holds the Prometheus collectors for the web portal.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: route, method, status
	HTTPDuration *prometheus.HistogramVec // labels: route

	SignupOutcomes *prometheus.CounterVec // labels: outcome={success,invalid,rejected,unreachable}
	NearestLookups *prometheus.CounterVec // labels: result={hit,miss}

	MapRedraws  *prometheus.CounterVec // labels: result={redrawn,unchanged}
	MapSessions prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		SignupOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signup_submissions_total",
			Help:      "Signup submissions by outcome.",
		}, []string{"outcome"}),
		NearestLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nearest_lookups_total",
			Help:      "Nearest-station lookups by cache result.",
		}, []string{"result"}),
		MapRedraws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_redraws_total",
			Help:      "Map layer updates, split into rebuilt and unchanged snapshots.",
		}, []string{"result"}),
		MapSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "map_sessions",
			Help:      "Map sessions currently held in memory.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.SignupOutcomes,
		m.NearestLookups,
		m.MapRedraws,
		m.MapSessions,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build
// many servers without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func (m *Metrics) ObserveNearestLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.NearestLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRedraw(redrawn bool) {
	result := "unchanged"
	if redrawn {
		result = "redrawn"
	}
	m.MapRedraws.WithLabelValues(result).Inc()
}
