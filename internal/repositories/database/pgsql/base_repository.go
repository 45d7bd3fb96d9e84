package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultCommitTimeout = 5 * time.Second

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool          *pgxpool.Pool
	CommitTimeout time.Duration
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to begin transaction", err)
	}
	return tx, nil
}

// BeginReadOnlySnapshot starts a REPEATABLE READ read-only transaction.
func (r *BaseRepository) BeginReadOnlySnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to begin snapshot transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction. The commit runs detached from ctx cancellation with
// its own timeout so work that reached the commit is not abandoned by a departing caller.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	timeout := r.CommitTimeout
	if timeout <= 0 {
		timeout = defaultCommitTimeout
	}
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := tx.Commit(commitCtx); err != nil {
		return mapError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewStorageError("failed to rollback transaction", err)
	}
	return nil
}

// inTx runs fn inside a read-write transaction and commits when fn succeeds.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
