package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search backend and response cache Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aristotle",
			Name:      "backend_requests_total",
			Help:      "Total number of search backend requests",
		},
		[]string{"driver", "operation", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aristotle",
			Name:      "backend_request_duration_seconds",
			Help:      "Search backend request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"driver", "operation"},
	)

	BackendHitsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aristotle",
			Name:      "backend_hits_returned",
			Help:      "Number of hits returned per search request",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 125, 250, 500},
		},
		[]string{"driver"},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aristotle",
			Name:      "response_cache_total",
			Help:      "Response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers backend and cache metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(BackendHitsReturned)
	prometheus.MustRegister(CacheTotal)
	searchMetricsRegistered = true
}

// ObserveBackend records one backend round trip.
func ObserveBackend(driver, operation string, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	BackendRequestsTotal.WithLabelValues(driver, operation, status).Inc()
	BackendRequestDuration.WithLabelValues(driver, operation).Observe(seconds)
}
