package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}

// InTx runs fn inside one transaction. Any error from fn rolls everything
// back; commit only happens when fn succeeds.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

// likeArg is the bound value for LOWER(col) LIKE LOWER(?) substring matches.
func likeArg(s string) string { return "%" + s + "%" }
