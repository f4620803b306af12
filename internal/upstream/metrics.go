package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// upstreamReqs counts calls by upstream path and outcome kind.
	upstreamReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of calls to tenant reservation APIs.",
		},
		[]string{"path", "outcome"},
	)

	// upstreamLat records call duration in seconds by upstream path.
	upstreamLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of calls to tenant reservation APIs in seconds.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"path"},
	)
)

func init() {
	prometheus.MustRegister(upstreamReqs, upstreamLat)
}

func observe(path string, r Result) {
	upstreamReqs.WithLabelValues(path, r.Kind.String()).Inc()
	upstreamLat.WithLabelValues(path).Observe(r.Elapsed.Seconds())
}
