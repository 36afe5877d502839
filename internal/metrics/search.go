package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fedsearch",
			Name:      "search_requests_total",
			Help:      "Total number of federated search requests",
		},
		[]string{"status"}, // "ok" / "empty" / "error"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fedsearch",
			Name:      "search_duration_seconds",
			Help:      "Federated search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	AdapterFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fedsearch",
			Name:      "adapter_fetch_duration_seconds",
			Help:      "Record provider fetch duration per entity type",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"type"},
	)

	AdapterFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fedsearch",
			Name:      "adapter_failures_total",
			Help:      "Record provider failures per entity type",
		},
		[]string{"type"},
	)

	AdapterMatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fedsearch",
			Name:      "adapter_matches_total",
			Help:      "Records matched by the fuzzy matcher per entity type",
		},
		[]string{"type"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(AdapterFetchDuration)
	prometheus.MustRegister(AdapterFailuresTotal)
	prometheus.MustRegister(AdapterMatchesTotal)
	searchMetricsRegistered = true
}
