package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory collection, used by tests and the
// --db=:memory: scratch mode.
const MemoryPath = ":memory:"

// connPragmas are applied once after the pool is opened. busy_timeout lets
// a concurrent CLI invocation wait for the API server's write lock instead
// of failing immediately with SQLITE_BUSY.
var connPragmas = []struct {
	stmt string
	what string
}{
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
	{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
}

// OpenDB opens the plant collection at path and brings its schema up to
// date. The parent directory must already exist.
func OpenDB(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection to :memory: would otherwise see its own empty database.
	if path == MemoryPath {
		database.SetMaxOpenConns(1)
	}

	for _, p := range connPragmas {
		if _, err := database.Exec(p.stmt); err != nil {
			database.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrating plant store: %w", err)
	}
	return database, nil
}
