// Package tenant provides tenant scoping plumbing.
// Tenancy is row-scoped: every table carries a tenant_id column and every
// repository statement filters on the tenant id taken from the context.
package tenant

import (
	"context"
	"errors"

	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/tx"
)

// Errors for context operations.
var (
	ErrNoTenantInContext = errors.New("tenant not found in context")
	ErrNoTxManager       = errors.New("transaction manager not found in context")
)

type ctxKey int

const (
	txManagerKey ctxKey = iota
)

// --- TxManager ---

// WithTxManager stores the TxManager in ctx.
func WithTxManager(ctx context.Context, txm tx.Manager) context.Context {
	return context.WithValue(ctx, txManagerKey, txm)
}

// GetTxManager retrieves the TxManager from ctx.
func GetTxManager(ctx context.Context) (tx.Manager, error) {
	txm, ok := ctx.Value(txManagerKey).(tx.Manager)
	if !ok || txm == nil {
		return nil, ErrNoTxManager
	}
	return txm, nil
}

// MustGetTxManager retrieves the TxManager or panics. A missing manager is a
// programming error (middleware not installed), not a runtime condition.
func MustGetTxManager(ctx context.Context) tx.Manager {
	txm, err := GetTxManager(ctx)
	if err != nil {
		panic("TxManager not in context: " + err.Error())
	}
	return txm
}

// --- Tenant ---

// GetTenantID returns the current tenant id from the user context.
func GetTenantID(ctx context.Context) (id.ID, error) {
	tid := appctx.GetTenantID(ctx)
	if id.IsNil(tid) {
		return tid, ErrNoTenantInContext
	}
	return tid, nil
}

// MustGetTenantID returns the tenant id or panics.
// Repositories use it: a query without a tenant scope must never run.
func MustGetTenantID(ctx context.Context) id.ID {
	tid, err := GetTenantID(ctx)
	if err != nil {
		panic("tenant not in context: " + err.Error())
	}
	return tid
}
