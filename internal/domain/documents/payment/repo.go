package payment

import (
	"context"

	"tradebooks/internal/core/id"
	"tradebooks/internal/domain"
)

// Repository defines the interface for Payment persistence. Rows are never
// physically removed: Delete from the embedded interface is not used; the
// service soft-deletes instead.
type Repository interface {
	domain.DocumentRepository[*Payment]

	// SoftDelete sets the deletion triple without removing the row.
	SoftDelete(ctx context.Context, paymentID id.ID, byID id.ID) error

	// SetArchived flips the archive triple.
	SetArchived(ctx context.Context, paymentID id.ID, archived bool, byID id.ID) error
}
