package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"genepack/internal/catalog/core"
)

// stubConn records statements and serves stored payloads back, standing in
// for a real Postgres connection.
type stubConn struct {
	mu       sync.Mutex
	execs    []string
	payloads [][]byte
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (c *stubConn) Ping(context.Context) error { return nil }

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.execs = append(c.execs, query)
	if strings.Contains(query, "INSERT INTO genepack_runs") && len(args) == 3 {
		if b, ok := args[2].Value.([]byte); ok {
			c.payloads = append(c.payloads, b)
		}
	}
	return driver.RowsAffected(1), nil
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !strings.Contains(query, "SELECT payload FROM genepack_runs") {
		return nil, driver.ErrSkip
	}
	rows := make([][]byte, len(c.payloads))
	copy(rows, c.payloads)
	return &stubRows{payloads: rows}, nil
}

type stubRows struct {
	payloads [][]byte
	idx      int
}

func (r *stubRows) Columns() []string { return []string{"payload"} }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.payloads) {
		return io.EOF
	}
	dest[0] = r.payloads[r.idx]
	r.idx++
	return nil
}

type stubConnector struct{ conn *stubConn }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return &stubConn{}, nil }

func newStubDB() (*sql.DB, *stubConn) {
	conn := &stubConn{}
	return sql.OpenDB(stubConnector{conn: conn}), conn
}

func TestNewStore_CreatesTable(t *testing.T) {
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	var sawDDL bool
	for _, stmt := range conn.execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected runs table DDL, got execs: %v", conn.execs)
	}
}

func TestStore_RecordAndListRoundTrip(t *testing.T) {
	db, _ := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("postgres://ignored")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	rec := core.RunRecord{
		ID:        "run-1",
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		LayerFrom: 43,
		LayerTo:   60,
		Genes:     []string{"adka"},
		Layers:    []core.LayerStatus{{Layer: 43, Status: "ok", Rows: 2}},
		RowsKept:  2,
	}
	if err := store.RecordRun(context.Background(), rec); err != nil {
		t.Fatalf("record: %v", err)
	}
	runs, err := store.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-1" || runs[0].Layers[0].Rows != 2 {
		t.Fatalf("unexpected runs %+v", runs)
	}
	// The payload stored must round-trip as JSON.
	b, _ := json.Marshal(runs[0])
	if !strings.Contains(string(b), `"adka"`) {
		t.Fatalf("payload lost gene list: %s", b)
	}
}
