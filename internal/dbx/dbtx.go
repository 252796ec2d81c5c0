// Package dbx holds the database plumbing shared by the entity
// repositories: the DBTX handle they run against and the transaction
// wrapper the importer uses to make a whole document land or not at all.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface a repository needs. Both *sql.DB and *sql.Tx
// satisfy it, so the same repository code serves direct reads (export,
// counts) and transactional writes (import).
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// An import run wraps all of its inserts this way:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx,
//	        `DELETE FROM workouts WHERE owner_id = $1`, ownerID)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
