// Package memory implements an in-memory run catalog for tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"genepack/internal/catalog/core"
)

// Store implements core.Store backed by process memory.
type Store struct {
	mu   sync.RWMutex
	runs map[string]core.RunRecord
}

// New returns an empty in-memory catalog.
func New() *Store { return &Store{runs: make(map[string]core.RunRecord)} }

// RecordRun upserts the record by ID.
func (s *Store) RecordRun(_ context.Context, rec core.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rec.ID] = rec
	return nil
}

// ListRuns returns records ordered by start time ascending.
func (s *Store) ListRuns(_ context.Context) ([]core.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.RunRecord, 0, len(s.runs))
	for _, rec := range s.runs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }
