// Package blob re-exports the artifact storage abstractions for stable
// imports. Call sites depend on blob.Store; only this package touches the
// infra-backed implementations.
package blob

import (
	"genepack/internal/blob/core"
)

type (
	// Driver identifies an artifact storage backend driver.
	Driver = core.Driver
	// PutOptions configures an artifact write.
	PutOptions = core.PutOptions
	// Info describes stored artifact metadata.
	Info = core.Info
	// Store is the interface for artifact storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
)

// ErrNotFound indicates the requested artifact does not exist.
var ErrNotFound = core.ErrNotFound
