package catalog

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpen_Memory(t *testing.T) {
	t.Setenv("GENEPACK_CATALOG_DRIVER", "memory")
	store, err := Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
}

func TestOpen_DefaultSQLite(t *testing.T) {
	t.Setenv("GENEPACK_CATALOG_DRIVER", "")
	t.Setenv("GENEPACK_SQLITE_PATH", filepath.Join(t.TempDir(), "genepack.db"))
	store, err := Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Setenv("GENEPACK_CATALOG_DRIVER", "csv")
	if _, err := Open(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestNewRunID_Unique(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a, b := NewRunID(now), NewRunID(now)
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
}
