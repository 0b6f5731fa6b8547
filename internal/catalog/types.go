// Package catalog re-exports the run catalog abstractions for stable
// imports. Call sites depend on catalog.Store; only this package touches the
// infra-backed implementations.
package catalog

import (
	"genepack/internal/catalog/core"
)

type (
	// Driver identifies a catalog backend driver.
	Driver = core.Driver
	// LayerStatus captures the outcome of one layer within a run.
	LayerStatus = core.LayerStatus
	// ArtifactRecord captures one persisted gene artifact.
	ArtifactRecord = core.ArtifactRecord
	// RunRecord is the durable summary of one pipeline run.
	RunRecord = core.RunRecord
	// Store is the interface for catalog backends.
	Store = core.Store
)

const (
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
	// DriverSQLite is the embedded sqlite driver.
	DriverSQLite = core.DriverSQLite
	// DriverPostgres is the PostgreSQL driver.
	DriverPostgres = core.DriverPostgres
)

// NewRunID returns a unique, time-sortable run identifier.
var NewRunID = core.NewRunID
