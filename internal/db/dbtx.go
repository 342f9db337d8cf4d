package db

import (
	"context"
	"database/sql"
)

// DBTX is what the plant, room and reminder repositories need from the
// database. Both the pool and an open transaction provide it, so the same
// repository code runs standalone or inside WithinTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
