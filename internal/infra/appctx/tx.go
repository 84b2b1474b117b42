package appctx

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const txKey ctxKey = "tx"

// WithTx stores an open transaction in the context so repositories pick it
// up instead of the bare connection pool.
func WithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// Tx extracts the current transaction from the context, if any.
func Tx(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sqlx.Tx)
	return tx, ok
}
