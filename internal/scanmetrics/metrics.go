// Package scanmetrics exposes Prometheus instrumentation for the scan
// engine. Metrics are declared once as package vars and registered with
// the default registry at init, never passed around explicitly.
package scanmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansTotal counts completed scans, labeled by the dispatch path
	// bind.Resolve chose (format/group/regexp/auto).
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devlogscan_scans_total",
			Help: "Total number of scans run, by dispatch path",
		},
		[]string{"path"},
	)

	// EventsEmitted counts normalized events produced across all scans.
	EventsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devlogscan_events_emitted_total",
		Help: "Total number of validation events emitted after filtering",
	})

	// DecodeErrors counts decoder errors swallowed or surfaced, labeled
	// by whether ignore_errors caused them to be swallowed.
	DecodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devlogscan_decode_errors_total",
			Help: "Total number of decoder errors encountered",
		},
		[]string{"outcome"},
	)

	// ScanDuration observes how long init-global took to materialize a
	// scan's full event vector.
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "devlogscan_scan_duration_seconds",
		Help:    "Time spent parsing, clustering, and filtering one scan",
		Buckets: prometheus.DefBuckets,
	})
)
