package metrics

import "github.com/prometheus/client_golang/prometheus"

// Similarity procedure metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postsearch",
			Name:      "match_requests_total",
			Help:      "Total number of match_posts calls",
		},
		[]string{"backend", "status"},
	)

	MatchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "postsearch",
			Name:      "match_request_duration_seconds",
			Help:      "match_posts call duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"backend"},
	)

	MatchRowsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "postsearch",
			Name:      "match_rows_returned",
			Help:      "Rows returned per match_posts call",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"backend"},
	)
)

var matchMetricsRegistered bool

// RegisterMatchMetrics registers the similarity procedure metrics. Must be called once from main.
func RegisterMatchMetrics() {
	if matchMetricsRegistered {
		return
	}
	prometheus.MustRegister(MatchRequestsTotal)
	prometheus.MustRegister(MatchRequestDuration)
	prometheus.MustRegister(MatchRowsReturned)
	matchMetricsRegistered = true
}
