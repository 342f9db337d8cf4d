package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kvitko/internal/db"
)

// FailOnNthExecUoW runs the unit of work in a real transaction but makes the
// FailOn-th write (counting from 1) return Err. Reads are not counted. It is
// used to check that a failed plant or order write leaves the store as it
// was before the use case started.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(ctx, &failingTx{DBTX: tx, failOn: u.FailOn, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// failingTx is only ever used from the goroutine running the unit of work.
type failingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
