package branch

import (
	"context"

	"tradebooks/internal/core/id"
	"tradebooks/internal/domain"
)

// Repository defines the interface for Branch persistence.
type Repository interface {
	domain.CatalogRepository[*Branch]

	// NextBranchNumber returns max(branch_number)+1 for the tenant.
	NextBranchNumber(ctx context.Context) (int, error)

	// BranchNumber returns the ordinal of one branch.
	BranchNumber(ctx context.Context, branchID id.ID) (int, error)
}
