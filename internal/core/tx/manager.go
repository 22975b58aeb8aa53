// Package tx provides the transaction management contract.
// Domain services depend on this interface; the pgx implementation lives in
// infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
//
// RunInTransaction executes fn within a database transaction. If fn returns
// an error the transaction is rolled back, otherwise it is committed.
// Nested calls reuse the transaction already present in ctx, which is how
// document writes and their stock postings end up in one unit of work.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
