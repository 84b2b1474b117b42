package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/infra/appctx"
)

// maxTxAttempts bounds the retry loop for serialization failures.
const maxTxAttempts = 3

type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// RunTx runs fn inside a transaction carried through the context. Nested
// calls reuse the outer transaction. Serialization and deadlock failures
// (SQLSTATE 40001/40P01) are retried up to maxTxAttempts; any other driver
// failure surfaces as ErrStoreUnavailable. Errors returned by fn itself are
// passed through untouched so policy rejections keep their identity.
func (m *TxManager) RunTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := appctx.Tx(ctx); ok {
		return fn(ctx)
	}

	var lastErr error

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !retryable(err) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, lastErr)
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", domain.ErrStoreUnavailable, err)
	}

	if err := fn(appctx.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, rbErr)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// Queryer returns the transaction from the context when present, otherwise
// the connection pool. Repositories route every statement through it.
func Queryer(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := appctx.Tx(ctx); ok {
		return tx
	}

	return db
}
