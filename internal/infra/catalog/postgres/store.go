// Package postgres implements the run catalog on a PostgreSQL server,
// mirroring the sqlite payload shape so records stay portable across
// backends.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"genepack/internal/catalog/core"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/genepack?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the sql.Open used by NewStore and returns a restore
// func. Test-only seam; production code always dials real Postgres.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

// Store persists run records to Postgres.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed catalog using the provided DSN (falls
// back to defaultDSN) and ensures the runs table exists.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS genepack_runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMPTZ NOT NULL,
		payload JSONB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &Store{db: db}, nil
}

// RecordRun upserts the record by ID.
func (s *Store) RecordRun(ctx context.Context, rec core.RunRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT INTO genepack_runs (id, started_at, payload) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET started_at=excluded.started_at, payload=excluded.payload`,
		rec.ID, rec.StartedAt.UTC(), payload)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns records ordered by start time ascending.
func (s *Store) ListRuns(ctx context.Context) ([]core.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM genepack_runs ORDER BY started_at, id`)
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
