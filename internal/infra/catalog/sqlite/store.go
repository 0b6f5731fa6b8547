// Package sqlite implements the run catalog on an embedded sqlite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"genepack/internal/catalog/core"
)

// DefaultPath is the sqlite file used when none is configured.
const DefaultPath = "./genepack.db"

// Store persists run records as JSON payload rows keyed by run ID.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) a sqlite-backed catalog at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// RecordRun upserts the record by ID.
func (s *Store) RecordRun(ctx context.Context, rec core.RunRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs (id, started_at, payload) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, payload=excluded.payload`,
		rec.ID, rec.StartedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"), payload)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns records ordered by start time ascending.
func (s *Store) ListRuns(ctx context.Context) ([]core.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []core.RunRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		var rec core.RunRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode run: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
