package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinetix/booking-core/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxTxAttempts  = 3
	txRetryBackoff = 50 * time.Millisecond
)

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

// runInTxWithRetry retries serialization failures and deadlocks with a short
// linear backoff before giving up with ErrUnavailable. Non-transient errors
// surface immediately.
func runInTxWithRetry(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var err error

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = runInTx(ctx, db, fn)
		if err == nil || !isTransient(err) {
			return err
		}

		select {
		case <-time.After(time.Duration(attempt) * txRetryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return errors.Join(domain.ErrUnavailable, err)
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}
