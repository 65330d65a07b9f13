package metrics

import "github.com/prometheus/client_golang/prometheus"

// Listing search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plantdex",
			Name:      "search_requests_total",
			Help:      "Total number of listing searches by retrieval mode",
		},
		[]string{"mode"},
	)

	SearchFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "plantdex",
			Name:      "search_fallback_total",
			Help:      "Semantic searches degraded to name matching after an embedding failure",
		},
	)

	SemanticCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "plantdex",
			Name:      "semantic_candidates",
			Help:      "Candidates scored per semantic search",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
		},
	)

	SemanticDimMismatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "plantdex",
			Name:      "semantic_dim_mismatch_total",
			Help:      "Candidates skipped because their embedding length differs from the query's",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers listing search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchFallbackTotal)
	prometheus.MustRegister(SemanticCandidates)
	prometheus.MustRegister(SemanticDimMismatchTotal)
	searchMetricsRegistered = true
}
