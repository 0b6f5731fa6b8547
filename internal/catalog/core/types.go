// Package core defines the abstractions shared by run catalog backends.
package core

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Driver identifies a concrete catalog storage implementation.
type Driver string

const (
	// DriverMemory keeps records in process memory (tests / ephemeral).
	DriverMemory Driver = "memory"
	// DriverSQLite persists records to an embedded sqlite file.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres persists records to a PostgreSQL server.
	DriverPostgres Driver = "postgres"
)

// LayerStatus captures the outcome of one layer within a run.
type LayerStatus struct {
	Layer          int      `json:"layer"`
	Status         string   `json:"status"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	Rows           int      `json:"rows"`
	Error          string   `json:"error,omitempty"`
}

// ArtifactRecord captures one persisted gene artifact.
type ArtifactRecord struct {
	Gene      string `json:"gene"`
	Key       string `json:"key"`
	SizeBytes int64  `json:"size_bytes"`
}

// RunRecord is the durable summary of one pipeline run.
type RunRecord struct {
	ID           string           `json:"id"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   time.Time        `json:"finished_at"`
	LayerFrom    int              `json:"layer_from"`
	LayerTo      int              `json:"layer_to"`
	Genes        []string         `json:"genes"`
	Layers       []LayerStatus    `json:"layers"`
	Artifacts    []ArtifactRecord `json:"artifacts,omitempty"`
	SkippedGenes []string         `json:"skipped_genes,omitempty"`
	RowsKept     int64            `json:"rows_kept"`
	RowsDropped  int64            `json:"rows_dropped"`
}

// NewRunID returns a unique, time-sortable run identifier.
func NewRunID(now time.Time) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("run-%s-%s", now.UTC().Format("20060102T150405"), hex.EncodeToString(suffix))
}

// Store persists run records. RecordRun upserts by run ID; ListRuns returns
// records ordered by start time ascending.
type Store interface {
	RecordRun(ctx context.Context, rec RunRecord) error
	ListRuns(ctx context.Context) ([]RunRecord, error)
	Close() error
}
