// Package metrics exposes pipeline counters for Prometheus scraping.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	MetricLayersProcessed  = "layers_processed_total"
	MetricLayersSkipped    = "layers_skipped_total"
	MetricRowsKept         = "rows_kept_total"
	MetricRowsDropped      = "rows_dropped_total"
	MetricArtifactsWritten = "artifacts_written_total"
	MetricArtifactsSkipped = "artifacts_skipped_total"
	MetricArtifactBytes    = "artifact_bytes_total"
)

var CounterLayersProcessed = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "genepack",
		Name:      MetricLayersProcessed,
		Help:      "Layers fully parsed and aggregated.",
	},
)

// CounterLayersSkipped is labelled by skip reason: missing, bad_schema, failed.
var CounterLayersSkipped = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "genepack",
		Name:      MetricLayersSkipped,
		Help:      "Layers that contributed no rows.",
	},
	[]string{
		"reason",
	},
)

var CounterRowsKept = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "genepack",
		Name:      MetricRowsKept,
		Help:      "Rows aggregated under a tracked gene.",
	},
)

var CounterRowsDropped = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "genepack",
		Name:      MetricRowsDropped,
		Help:      "Rows discarded because their gene is untracked.",
	},
)

var CounterArtifactsWritten = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "genepack",
		Name:      MetricArtifactsWritten,
		Help:      "Per-gene artifacts persisted.",
	},
)

var CounterArtifactsSkipped = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "genepack",
		Name:      MetricArtifactsSkipped,
		Help:      "Genes skipped because no layer had data.",
	},
)

var CounterArtifactBytes = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "genepack",
		Name:      MetricArtifactBytes,
		Help:      "Compressed bytes written across all artifacts.",
	},
)

func init() {
	prometheus.MustRegister(CounterLayersProcessed)
	prometheus.MustRegister(CounterLayersSkipped)
	prometheus.MustRegister(CounterRowsKept)
	prometheus.MustRegister(CounterRowsDropped)
	prometheus.MustRegister(CounterArtifactsWritten)
	prometheus.MustRegister(CounterArtifactsSkipped)
	prometheus.MustRegister(CounterArtifactBytes)
}
