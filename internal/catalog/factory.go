package catalog

import (
	"fmt"
	"os"

	memorystore "genepack/internal/infra/catalog/memory"
	"genepack/internal/infra/catalog/postgres"
	"genepack/internal/infra/catalog/sqlite"
)

// NewMemory returns an in-memory catalog suitable for tests.
func NewMemory() Store { return memorystore.New() }

// NewSQLite returns a sqlite-backed catalog at path (default ./genepack.db).
func NewSQLite(path string) (Store, error) { return sqlite.NewStore(path) }

// NewPostgres returns a Postgres-backed catalog for the DSN.
func NewPostgres(dsn string) (Store, error) { return postgres.NewStore(dsn) }

// Open selects a catalog backend using environment variables. Defaults to
// sqlite when unset.
//
//	GENEPACK_CATALOG_DRIVER: memory|sqlite|postgres (default sqlite)
//	GENEPACK_SQLITE_PATH: path to sqlite file (default ./genepack.db)
//	GENEPACK_POSTGRES_DSN: postgres DSN when driver=postgres
func Open() (Store, error) {
	driver := os.Getenv("GENEPACK_CATALOG_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return NewSQLite(os.Getenv("GENEPACK_SQLITE_PATH"))
	case DriverPostgres:
		return NewPostgres(os.Getenv("GENEPACK_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown catalog driver %s", driver)
	}
}
