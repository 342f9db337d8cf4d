package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/kvitko/internal/db"
)

// NewTestDB returns a migrated, empty in-memory plant store that is closed
// at the end of the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test plant store: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
