package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxFunc is one unit of work. Repositories built from tx see each other's
// writes and are committed or rolled back together.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork is the transaction boundary for every mutating use case:
// recompute the schedule, then persist plant rows and order indices as one
// atomic step.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(database *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: database}
}

// WithinTx commits when fn returns nil and rolls back on error or panic.
// A panic is re-raised after the rollback.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}
