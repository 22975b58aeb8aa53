// Package product provides the Product catalog.
package product

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
)

// Product represents a sellable item. Stock quantities for a product are
// kept in its base unit; document lines in other units convert on posting.
type Product struct {
	entity.Catalog

	// UnitID is the base measurement unit
	UnitID id.ID `db:"unit_id" json:"unitId"`

	// SalesRate is the default selling price per base unit
	SalesRate types.Amount `db:"sales_rate" json:"salesRate"`

	// PurchaseRate is the last known purchase price per base unit
	PurchaseRate types.Amount `db:"purchase_rate" json:"purchaseRate"`

	// ReorderLevel triggers low-stock reporting when quantity drops below it
	ReorderLevel types.Quantity `db:"reorder_level" json:"reorderLevel"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product.
func NewProduct(name string, unitID id.ID) *Product {
	return &Product{
		Catalog: entity.NewCatalog("", name),
		UnitID:  unitID,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(p.UnitID) {
		return apperror.NewValidation("base unit is required").
			WithDetail("field", "unitId")
	}
	if p.SalesRate.IsNegative() {
		return apperror.NewValidation("sales rate cannot be negative").
			WithDetail("field", "salesRate")
	}
	if p.PurchaseRate.IsNegative() {
		return apperror.NewValidation("purchase rate cannot be negative").
			WithDetail("field", "purchaseRate")
	}
	return nil
}
