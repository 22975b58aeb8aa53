package company

import (
	"context"

	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/domain"
)

// BranchOrdinalSource resolves a branch id to its sequential branch number,
// the 3-digit middle segment of branch-scoped codes.
type BranchOrdinalSource interface {
	BranchNumber(ctx context.Context, branchID id.ID) (int, error)
}

// Service provides business logic for the Company catalog.
type Service struct {
	*domain.CatalogService[*Company]
	repo Repository
}

// NewService creates a new Company service. Companies are not numbered,
// so no generator is wired.
func NewService(repo Repository) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Company]{
		Repo:       repo,
		EntityName: "company",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// GetCurrent retrieves the tenant's company row.
func (s *Service) GetCurrent(ctx context.Context) (*Company, error) {
	c, err := s.repo.GetCurrent(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("company", nil)
		}
		return nil, err
	}
	return c, nil
}

// CodeGenerationMode returns the tenant's numbering mode. Read per call,
// never cached: switching the mode takes effect on the next generated code.
func (s *Service) CodeGenerationMode(ctx context.Context) (sequence.Mode, error) {
	c, err := s.GetCurrent(ctx)
	if err != nil {
		return "", err
	}
	return c.CodeGeneration, nil
}

// ScopeResolver resolves the numbering scope for the current request:
// company mode plus the request branch. Every branch-capable generator
// shares this one strategy.
type ScopeResolver struct {
	companies *Service
	branches  BranchOrdinalSource
}

// NewScopeResolver creates the shared scope resolver.
func NewScopeResolver(companies *Service, branches BranchOrdinalSource) *ScopeResolver {
	return &ScopeResolver{companies: companies, branches: branches}
}

// CurrentScope implements domain.ScopeResolver.
func (r *ScopeResolver) CurrentScope(ctx context.Context) (sequence.Scope, error) {
	tid, err := tenant.GetTenantID(ctx)
	if err != nil {
		return sequence.Scope{}, err
	}

	mode, err := r.companies.CodeGenerationMode(ctx)
	if err != nil {
		return sequence.Scope{}, err
	}

	branchID := appctx.GetBranchID(ctx)
	if mode != sequence.ModeBranch || id.IsNil(branchID) {
		return sequence.ResolveScope(mode, tid, branchID, 0), nil
	}

	num, err := r.branches.BranchNumber(ctx, branchID)
	if err != nil {
		return sequence.Scope{}, err
	}
	return sequence.ResolveScope(mode, tid, branchID, num), nil
}

var _ domain.ScopeResolver = (*ScopeResolver)(nil)
