// Package customer provides the Customer catalog.
package customer

import (
	"context"

	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

// Customer represents a buyer.
type Customer struct {
	entity.Catalog

	Phone   *string `db:"phone" json:"phone,omitempty"`
	Email   *string `db:"email" json:"email,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`

	// CreditLimit caps outstanding receivables; zero means no limit
	CreditLimit types.Amount `db:"credit_limit" json:"creditLimit"`
}

// NewCustomer creates a new Customer.
func NewCustomer(name string) *Customer {
	return &Customer{Catalog: entity.NewCatalog("", name)}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]
}

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
}

// NewService creates a new Customer service.
func NewService(repo Repository, generator sequence.Generator) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
			Repo:       repo,
			Generator:  generator,
			Scopes:     domain.GlobalScopeResolver{},
			EntityName: "customer",
			CodePrefix: "CUS",
		}),
	}
}
