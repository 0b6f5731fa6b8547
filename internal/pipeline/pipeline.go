// Package pipeline aggregates per-layer transcript tables into per-gene
// datasets and flushes them as compressed artifacts.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"genepack/internal/artifact"
	"genepack/internal/blob"
	"genepack/internal/catalog"
	"genepack/internal/layer"
	"genepack/internal/metrics"
	"genepack/pkg/domain"
)

// Config fixes a run's inputs: where layer tables live, which genes to
// track, and the layer span to process. All fields are immutable for the
// duration of the run.
type Config struct {
	Source layer.Source
	Genes  []string
	Layers domain.LayerRange
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger installs a progress logger.
func WithLogger(l Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// Runner owns the gene → dataset mapping for one run. It is single-use:
// construct, Run once, discard. Nothing else mutates the mapping while a
// run is in flight.
type Runner struct {
	cfg      Config
	log      Logger
	datasets map[string]*domain.GeneDataset
}

// New constructs a Runner with a dataset entry for exactly the configured
// gene set, each starting empty. Duplicate gene names collapse.
func New(cfg Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		log:      noopLogger{},
		datasets: make(map[string]*domain.GeneDataset, len(cfg.Genes)),
	}
	for _, gene := range cfg.Genes {
		if gene == "" {
			continue
		}
		if _, ok := r.datasets[gene]; !ok {
			r.datasets[gene] = domain.NewGeneDataset()
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// genes returns the tracked gene set in sorted order.
func (r *Runner) genes() []string {
	out := make([]string, 0, len(r.datasets))
	for gene := range r.datasets {
		out = append(out, gene)
	}
	sort.Strings(out)
	return out
}

// Run drives the pipeline: every configured layer in ascending order, then
// the artifact flush. Layer-level failures degrade the output and the run
// continues; a store failure during the flush is fatal. The returned record
// summarizes the run for the catalog even when an error is returned.
func (r *Runner) Run(ctx context.Context, store blob.Store) (catalog.RunRecord, error) {
	rec := catalog.RunRecord{
		ID:        catalog.NewRunID(time.Now()),
		StartedAt: time.Now().UTC(),
		LayerFrom: r.cfg.Layers.From,
		LayerTo:   r.cfg.Layers.To,
		Genes:     r.genes(),
	}

	for idx := r.cfg.Layers.From; idx < r.cfg.Layers.To; idx++ {
		if err := ctx.Err(); err != nil {
			rec.FinishedAt = time.Now().UTC()
			return rec, fmt.Errorf("run cancelled at layer %d: %w", idx, err)
		}
		rec.Layers = append(rec.Layers, r.aggregateLayer(idx, &rec))
	}

	if err := r.flush(ctx, store, &rec); err != nil {
		rec.FinishedAt = time.Now().UTC()
		return rec, err
	}
	rec.FinishedAt = time.Now().UTC()
	r.log.Info("processing complete",
		"layers", r.cfg.Layers.Len(),
		"artifacts", len(rec.Artifacts),
		"skipped_genes", len(rec.SkippedGenes))
	return rec, nil
}

// aggregateLayer reads one layer and folds its rows into the dataset
// mapping. Every tracked gene gains the layer key, even when the layer
// contributed nothing, so consumers can tell "no data" from "never
// processed".
func (r *Runner) aggregateLayer(idx int, rec *catalog.RunRecord) catalog.LayerStatus {
	r.log.Info("processing layer", "layer", idx)
	status := catalog.LayerStatus{Layer: idx}

	res := r.cfg.Source.Read(idx)
	status.Status = string(res.Status)
	switch res.Status {
	case layer.StatusOK:
		metrics.CounterLayersProcessed.Inc()
	case layer.StatusMissing:
		r.log.Warn("layer source missing, skipping", "layer", idx, "path", r.cfg.Source.Path(idx))
		metrics.CounterLayersSkipped.WithLabelValues(string(res.Status)).Inc()
	case layer.StatusBadSchema:
		status.MissingColumns = res.MissingColumns
		r.log.Error("layer missing required columns, skipping",
			"layer", idx, "columns", strings.Join(res.MissingColumns, ","))
		metrics.CounterLayersSkipped.WithLabelValues(string(res.Status)).Inc()
	case layer.StatusFailed:
		status.Error = res.Err.Error()
		r.log.Error("layer processing failed, skipping", "layer", idx, "error", res.Err)
		metrics.CounterLayersSkipped.WithLabelValues(string(res.Status)).Inc()
	}

	// A skipped layer still contributes an explicit empty sequence to
	// every tracked gene via EnsureLayer below.
	for _, record := range res.Records {
		ds, tracked := r.datasets[record.Gene]
		if !tracked {
			// Untracked genes are filtered, not flagged: downstream
			// consumers rely on artifacts containing exactly the
			// configured set.
			rec.RowsDropped++
			metrics.CounterRowsDropped.Inc()
			continue
		}
		ds.Append(idx, record.X, record.Y)
		rec.RowsKept++
		status.Rows++
		metrics.CounterRowsKept.Inc()
	}
	for _, ds := range r.datasets {
		ds.EnsureLayer(idx)
	}
	return status
}

// flush writes one artifact per gene with data, in sorted gene order.
func (r *Runner) flush(ctx context.Context, store blob.Store, rec *catalog.RunRecord) error {
	w := artifact.NewWriter(store)
	for _, gene := range rec.Genes {
		ds := r.datasets[gene]
		if ds.Empty() {
			r.log.Info("skipping gene, no data found", "gene", gene)
			rec.SkippedGenes = append(rec.SkippedGenes, gene)
			metrics.CounterArtifactsSkipped.Inc()
			continue
		}
		info, err := w.Write(ctx, gene, ds)
		if err != nil {
			return fmt.Errorf("write artifact for %s: %w", gene, err)
		}
		r.log.Info("saved artifact",
			"key", info.Key,
			"size_kb", fmt.Sprintf("%.2f", float64(info.Size)/1024))
		rec.Artifacts = append(rec.Artifacts, catalog.ArtifactRecord{Gene: gene, Key: info.Key, SizeBytes: info.Size})
		metrics.CounterArtifactsWritten.Inc()
		metrics.CounterArtifactBytes.Add(float64(info.Size))
	}
	return nil
}
