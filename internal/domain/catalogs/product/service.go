package product

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/domain"
)

// UnitChecker verifies a referenced unit exists.
type UnitChecker interface {
	Exists(ctx context.Context, unitID id.ID) (bool, error)
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo  Repository
	units UnitChecker
}

// NewService creates a new Product service.
func NewService(repo Repository, units UnitChecker, generator sequence.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     domain.GlobalScopeResolver{},
		EntityName: "product",
		CodePrefix: "PRD",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		units:          units,
	}

	base.Hooks().OnBeforeCreate(svc.checkUnit)
	base.Hooks().OnBeforeUpdate(svc.checkUnit)

	return svc
}

func (s *Service) checkUnit(ctx context.Context, p *Product) error {
	ok, err := s.units.Exists(ctx, p.UnitID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("base unit does not exist").
			WithDetail("field", "unitId").
			WithDetail("value", p.UnitID.String())
	}
	return nil
}
