package unit

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

// Service provides business logic for the Unit catalog.
type Service struct {
	*domain.CatalogService[*Unit]
	repo Repository
}

// NewService creates a new Unit service.
func NewService(repo Repository, generator sequence.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Unit]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     domain.GlobalScopeResolver{},
		EntityName: "unit",
		CodePrefix: "UN",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.AfterCreate, svc.createIdentityConversion)
	base.Hooks().OnBeforeDelete(svc.gateDelete)

	return svc
}

// createIdentityConversion gives every new unit a factor-1 self conversion.
func (s *Service) createIdentityConversion(ctx context.Context, u *Unit) error {
	conv := NewIdentityConversion(u.ID)
	conv.StampCreate(ctx)
	return s.repo.CreateConversion(ctx, conv)
}

// gateDelete removes the unit's identity conversion before the unit row goes.
// If the delete touches no rows the unit is a base unit still referenced by
// other conversions, and the whole transaction rolls back leaving the unit
// intact.
func (s *Service) gateDelete(ctx context.Context, u *Unit) error {
	rows, err := s.repo.DeleteIdentityConversion(ctx, u.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NewConflict("unit is referenced by unit conversions and cannot be deleted").
			WithDetail("unit_id", u.ID.String())
	}
	return nil
}

// AddConversion registers a derived conversion for a unit.
func (s *Service) AddConversion(ctx context.Context, c *Conversion) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	c.StampCreate(ctx)
	return s.repo.CreateConversion(ctx, c)
}

// Conversions lists a unit's conversions.
func (s *Service) Conversions(ctx context.Context, unitID id.ID) ([]*Conversion, error) {
	return s.repo.ListConversions(ctx, unitID)
}

// FactorToBase resolves the multiplication factor from a unit to its base
// unit. A unit without conversion rows converts with factor 1.
func (s *Service) FactorToBase(ctx context.Context, unitID id.ID) (types.Quantity, error) {
	conv, err := s.repo.ConversionFactor(ctx, unitID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return types.One, nil
		}
		return types.Zero, err
	}
	return conv.ConversionValue, nil
}
