package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pagefold"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Pagination metrics
var (
	PageListRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pagelist_renders_total",
			Help:      "Page summaries rendered, by layout variant",
		},
		[]string{"variant"},
	)

	PageListMarkers = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pagelist_markers",
			Help:      "Length distribution of rendered page summaries",
			Buckets:   []float64{1, 5, 10, 15, 20, 30, 50},
		},
		[]string{"variant"},
	)
)

// Feed metrics
var (
	FeedEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_entries",
			Help:      "Entries currently stored in the feed",
		},
	)
)

// PageListRendered records one rendered page summary.
func PageListRendered(variant string, markers int) {
	PageListRendersTotal.WithLabelValues(variant).Inc()
	PageListMarkers.WithLabelValues(variant).Observe(float64(markers))
}
