package company

import (
	"context"

	"tradebooks/internal/domain"
)

// Repository defines the interface for Company persistence.
type Repository interface {
	domain.CatalogRepository[*Company]

	// GetCurrent retrieves the tenant's company row.
	GetCurrent(ctx context.Context) (*Company, error)
}
