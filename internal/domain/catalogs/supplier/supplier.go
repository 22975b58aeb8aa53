// Package supplier provides the Supplier catalog.
package supplier

import (
	"context"

	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/domain"
)

// Supplier represents a goods supplier.
type Supplier struct {
	entity.Catalog

	Phone   *string `db:"phone" json:"phone,omitempty"`
	Email   *string `db:"email" json:"email,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`

	// ContactPerson is the primary contact at the supplier
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`
}

// NewSupplier creates a new Supplier.
func NewSupplier(name string) *Supplier {
	return &Supplier{Catalog: entity.NewCatalog("", name)}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	return s.Catalog.Validate(ctx)
}

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]
}

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
}

// NewService creates a new Supplier service.
func NewService(repo Repository, generator sequence.Generator) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
			Repo:       repo,
			Generator:  generator,
			Scopes:     domain.GlobalScopeResolver{},
			EntityName: "supplier",
			CodePrefix: "SUP",
		}),
	}
}
