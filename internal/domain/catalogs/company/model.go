// Package company provides the Company catalog. The company row holds
// tenant-wide settings, most importantly the code generation mode every
// numbered catalog and document consults at call time.
package company

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/sequence"
)

// Company represents the tenant's company profile.
type Company struct {
	entity.Catalog

	// CodeGeneration selects branch-scoped or tenant-global numbering
	// for business codes
	CodeGeneration sequence.Mode `db:"code_generation" json:"codeGeneration"`

	// Address is the registered address
	Address *string `db:"address" json:"address,omitempty"`

	// Phone is the contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Currency is the ISO 4217 code amounts are kept in
	Currency string `db:"currency" json:"currency"`
}

// NewCompany creates a new Company with branch-scoped numbering by default.
func NewCompany(name string) *Company {
	return &Company{
		Catalog:        entity.NewCatalog("", name),
		CodeGeneration: sequence.ModeBranch,
		Currency:       "USD",
	}
}

// Validate implements entity.Validatable.
func (c *Company) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch c.CodeGeneration {
	case sequence.ModeBranch, sequence.ModeGlobal:
	default:
		return apperror.NewValidation("invalid code generation mode").
			WithDetail("field", "codeGeneration").
			WithDetail("value", string(c.CodeGeneration))
	}

	return nil
}
