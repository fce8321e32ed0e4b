// Package dbx holds the database plumbing shared by the server repositories
// and the client session store: the DBTX handle that both *sql.DB and
// *sql.Tx satisfy, a unit-of-work helper, and the supported SQL dialects.
package dbx

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/s-r-jones/deep-dive-air/internal/common"
)

// DBTX is what a repository needs from database/sql.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back when fn fails or panics; a panic is re-raised
// after the rollback. An error returned by fn is passed through unchanged.
// Begin and commit failures match common.ErrBackend.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := manager.Credentials(tx).Insert(ctx, c)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", common.ErrBackend, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx: %w", common.ErrBackend, err)
	}
	committed = true
	return nil
}
