// Package branch provides the Branch catalog. Branches carry a sequential
// ordinal (1, 2, 3, ...) rendered as the 3-digit middle segment of
// branch-scoped business codes.
package branch

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
)

// Branch represents a physical location of the company.
type Branch struct {
	entity.Catalog

	// BranchNumber is the ordinal used in branch-scoped codes
	// (branch 3 renders as "003")
	BranchNumber int `db:"branch_number" json:"branchNumber"`

	// Address is the branch address
	Address *string `db:"address" json:"address,omitempty"`

	// Phone is the branch contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// IsMain marks the head office branch
	IsMain bool `db:"is_main" json:"isMain"`
}

// NewBranch creates a new Branch. The ordinal is assigned on create.
func NewBranch(name string) *Branch {
	return &Branch{
		Catalog: entity.NewCatalog("", name),
	}
}

// Validate implements entity.Validatable.
func (b *Branch) Validate(ctx context.Context) error {
	if err := b.Catalog.Validate(ctx); err != nil {
		return err
	}
	if b.BranchNumber < 0 {
		return apperror.NewValidation("branch number cannot be negative").
			WithDetail("field", "branchNumber")
	}
	return nil
}
