// Package asset provides the Asset catalog: furniture, vehicles, equipment
// owned by a branch. Asset codes follow the company's numbering mode
// (branch 3, first asset => AST-003-000001).
package asset

import (
	"context"
	"time"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

// Asset represents a fixed asset.
type Asset struct {
	entity.Catalog

	// BranchID is the owning branch
	BranchID id.ID `db:"branch_id" json:"branchId"`

	// PurchaseRate is the acquisition cost
	PurchaseRate types.Amount `db:"purchase_rate" json:"purchaseRate"`

	// PurchasedAt is the acquisition date
	PurchasedAt *time.Time `db:"purchased_at" json:"purchasedAt,omitempty"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewAsset creates a new Asset.
func NewAsset(name string, branchID id.ID) *Asset {
	return &Asset{
		Catalog:  entity.NewCatalog("", name),
		BranchID: branchID,
	}
}

// Validate implements entity.Validatable.
func (a *Asset) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(a.BranchID) {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branchId")
	}
	if a.PurchaseRate.IsNegative() {
		return apperror.NewValidation("purchase rate cannot be negative").
			WithDetail("field", "purchaseRate")
	}
	return nil
}

// Repository defines the interface for Asset persistence.
type Repository interface {
	domain.CatalogRepository[*Asset]
}

// Service provides business logic for the Asset catalog.
type Service struct {
	*domain.CatalogService[*Asset]
}

// NewService creates a new Asset service.
func NewService(repo Repository, generator sequence.Generator, scopes domain.ScopeResolver) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Asset]{
			Repo:       repo,
			Generator:  generator,
			Scopes:     scopes,
			EntityName: "asset",
			CodePrefix: "AST",
		}),
	}
}
