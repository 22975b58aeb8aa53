package unit

import (
	"context"

	"tradebooks/internal/core/id"
	"tradebooks/internal/domain"
)

// Repository defines the interface for Unit and Conversion persistence.
type Repository interface {
	domain.CatalogRepository[*Unit]

	// CreateConversion persists a conversion row.
	CreateConversion(ctx context.Context, c *Conversion) error

	// ListConversions returns all conversions owned by the unit.
	ListConversions(ctx context.Context, unitID id.ID) ([]*Conversion, error)

	// DeleteIdentityConversion removes the unit's factor-1 self conversion
	// and returns the number of rows removed.
	DeleteIdentityConversion(ctx context.Context, unitID id.ID) (int64, error)

	// ConversionFactor resolves the factor from a unit to base units.
	ConversionFactor(ctx context.Context, unitID id.ID) (*Conversion, error)
}
