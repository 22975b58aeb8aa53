// Package unit provides the Unit catalog and unit conversions.
// Conversions map a unit to a base unit with a multiplication factor; every
// unit owns an identity conversion to itself with factor 1.
package unit

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
)

// Unit represents a measurement unit.
type Unit struct {
	entity.Catalog

	// Symbol is the short symbol (e.g. "kg", "pcs", "box")
	Symbol string `db:"symbol" json:"symbol"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewUnit creates a new Unit.
func NewUnit(name, symbol string) *Unit {
	return &Unit{
		Catalog: entity.NewCatalog("", name),
		Symbol:  symbol,
	}
}

// Validate implements entity.Validatable.
func (u *Unit) Validate(ctx context.Context) error {
	if err := u.Catalog.Validate(ctx); err != nil {
		return err
	}
	if u.Symbol == "" {
		return apperror.NewValidation("symbol is required").
			WithDetail("field", "symbol")
	}
	return nil
}

// Conversion maps a unit to its base unit. ConversionValue multiplies a
// quantity in the unit into base-unit terms. The identity conversion
// (UnitID == BaseUnitID, ConversionValue == 1) is created with the unit.
type Conversion struct {
	entity.BaseEntity

	UnitID     id.ID `db:"unit_id" json:"unitId"`
	BaseUnitID id.ID `db:"base_unit_id" json:"baseUnitId"`

	// ConversionValue is the factor to base units (box of 12 pcs => 12)
	ConversionValue types.Quantity `db:"conversion_value" json:"conversionValue"`

	entity.AuditFields
}

// NewIdentityConversion creates the factor-1 self conversion for a unit.
func NewIdentityConversion(unitID id.ID) *Conversion {
	return &Conversion{
		BaseEntity:      entity.NewBaseEntity(),
		UnitID:          unitID,
		BaseUnitID:      unitID,
		ConversionValue: types.One,
	}
}

// IsIdentity reports whether this is the unit's self conversion.
func (c *Conversion) IsIdentity() bool {
	return c.UnitID == c.BaseUnitID && c.ConversionValue.Equal(types.One)
}

// StampCreate stamps tenant and audit fields.
func (c *Conversion) StampCreate(ctx context.Context) {
	c.BaseEntity.StampCreate(ctx, &c.AuditFields)
}

// Validate implements entity.Validatable.
func (c *Conversion) Validate(ctx context.Context) error {
	if id.IsNil(c.UnitID) {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unitId")
	}
	if id.IsNil(c.BaseUnitID) {
		return apperror.NewValidation("base unit is required").
			WithDetail("field", "baseUnitId")
	}
	if !c.ConversionValue.IsPositive() {
		return apperror.NewValidation("conversion value must be positive").
			WithDetail("field", "conversionValue")
	}
	return nil
}
