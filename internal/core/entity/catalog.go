package entity

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
)

// Catalog is the base type for reference data: products, suppliers,
// customers, employees, assets, bank accounts.
type Catalog struct {
	BaseEntity

	// Code is the sequential business code (unique within its scope)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	AuditFields
}

// NewCatalog creates a Catalog with a generated ID.
// Code may be empty at construction; it is generated before the first save.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// Validate implements Validatable.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// GetID returns the primary key.
func (c *Catalog) GetID() id.ID { return c.ID }

// GetCode returns the business code.
func (c *Catalog) GetCode() string { return c.Code }

// SetCode assigns the business code (used by code generation).
func (c *Catalog) SetCode(code string) { c.Code = code }

// Label returns the display label used to populate UI selects.
func (c *Catalog) Label() string {
	return c.Name
}

// StampCreate stamps tenant and creation audit fields.
func (c *Catalog) StampCreate(ctx context.Context) {
	c.BaseEntity.StampCreate(ctx, &c.AuditFields)
}

// StampUpdate stamps update audit fields.
func (c *Catalog) StampUpdate(ctx context.Context) {
	c.BaseEntity.StampUpdate(ctx, &c.AuditFields)
}
