package stock

import (
	"context"

	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
)

// Repository defines operations for the stock register.
type Repository interface {
	// ApplyDelta upserts the (branch, product) row adding delta to the
	// running quantity. rate is non-nil for purchase postings and
	// refreshes LastPurchaseRate.
	ApplyDelta(ctx context.Context, branchID, productID id.ID, delta types.Quantity, rate *types.Amount) error

	// GetQuantity returns the current running quantity; zero if no row.
	GetQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error)

	// GetStock returns the full row for reporting.
	GetStock(ctx context.Context, branchID, productID id.ID) (*Stock, error)

	// ListByBranch returns all non-zero rows for a branch.
	ListByBranch(ctx context.Context, branchID id.ID) ([]*Stock, error)

	// DeliverableQuantity computes receipts minus prior deliveries for a
	// product at a branch. Used only by the delivery flow.
	DeliverableQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error)
}
