package branch

import (
	"context"

	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/domain"
)

// Service provides business logic for the Branch catalog.
// Branch codes are always tenant-global: the branch segment of a code cannot
// depend on the branch being created.
type Service struct {
	*domain.CatalogService[*Branch]
	repo Repository
}

// NewService creates a new Branch service.
func NewService(repo Repository, generator sequence.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Branch]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     domain.GlobalScopeResolver{},
		EntityName: "branch",
		CodePrefix: "BR",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.assignOrdinal)

	return svc
}

// assignOrdinal gives a new branch the next free branch number.
func (s *Service) assignOrdinal(ctx context.Context, b *Branch) error {
	if b.BranchNumber != 0 {
		return nil
	}
	num, err := s.repo.NextBranchNumber(ctx)
	if err != nil {
		return err
	}
	b.BranchNumber = num
	return nil
}

// BranchNumber implements company.BranchOrdinalSource.
func (s *Service) BranchNumber(ctx context.Context, branchID id.ID) (int, error) {
	return s.repo.BranchNumber(ctx, branchID)
}
