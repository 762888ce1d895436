// Package metrics declares the Prometheus collectors shared by the fetcher,
// the watcher and the notifier transports. Collectors are registered on the
// default registry, which the API server exposes at its metrics path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "urljournal"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20} //nolint: gochecknoglobals

//nolint:gochecknoglobals
var (
	// FetchDuration observes page fetch latency labelled by outcome
	// ("ok" or the lower-cased error kind).
	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of page fetches.",
		Buckets:   DefaultBuckets,
	}, []string{"outcome"})

	// JournalSize reports the number of entries of the latest snapshot.
	JournalSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "journal_size",
		Help:      "Number of URLs in the latest snapshot.",
	})

	// DiffURLs reports the size of each category of the latest diff.
	DiffURLs = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "diff_urls",
		Help:      "Number of URLs per category in the latest diff.",
	}, []string{"category"})

	// Notifications counts report dispatches labelled by outcome.
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Number of report notifications sent.",
	}, []string{"outcome"})
)

//nolint:gochecknoglobals
var (
	// HTTPRequestDuration observes API request latency labelled by method and
	// status code.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests served by the API.",
		Buckets:   DefaultBuckets,
	}, []string{"method", "code"})
)
