package repository

import "context"

// TxManager runs a function as one atomic unit of work. Every usecase call
// wraps its reads and writes in a single RunTx so no partial effect is
// observable by concurrent callers.
type TxManager interface {
	RunTx(ctx context.Context, fn func(ctx context.Context) error) error
}
