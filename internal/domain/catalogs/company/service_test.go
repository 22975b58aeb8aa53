package company

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/domain"
)

type fakeCompanyRepo struct {
	domain.CatalogRepository[*Company]

	current *Company
}

func (f *fakeCompanyRepo) GetCurrent(ctx context.Context) (*Company, error) {
	return f.current, nil
}

type fakeBranchOrdinals map[id.ID]int

func (f fakeBranchOrdinals) BranchNumber(ctx context.Context, branchID id.ID) (int, error) {
	return f[branchID], nil
}

func resolverContext(tenantID, branchID id.ID) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   id.New(),
		TenantID: tenantID,
		BranchID: branchID,
	})
}

func TestCurrentScope_BranchMode(t *testing.T) {
	comp := NewCompany("Acme Traders")
	comp.CodeGeneration = sequence.ModeBranch

	branchID := id.New()
	resolver := NewScopeResolver(
		NewService(&fakeCompanyRepo{current: comp}),
		fakeBranchOrdinals{branchID: 3},
	)

	tenantID := id.New()
	scope, err := resolver.CurrentScope(resolverContext(tenantID, branchID))
	require.NoError(t, err)

	require.True(t, scope.IsBranchScoped())
	assert.Equal(t, tenantID, scope.TenantID)
	assert.Equal(t, branchID, *scope.BranchID)
	assert.Equal(t, 3, scope.BranchNumber)
}

func TestCurrentScope_GlobalMode(t *testing.T) {
	comp := NewCompany("Acme Traders")
	comp.CodeGeneration = sequence.ModeGlobal

	resolver := NewScopeResolver(
		NewService(&fakeCompanyRepo{current: comp}),
		fakeBranchOrdinals{},
	)

	scope, err := resolver.CurrentScope(resolverContext(id.New(), id.New()))
	require.NoError(t, err)
	assert.False(t, scope.IsBranchScoped())
}

func TestCurrentScope_BranchModeWithoutBranch(t *testing.T) {
	comp := NewCompany("Acme Traders")
	comp.CodeGeneration = sequence.ModeBranch

	resolver := NewScopeResolver(
		NewService(&fakeCompanyRepo{current: comp}),
		fakeBranchOrdinals{},
	)

	// No branch on the request: degrade to tenant-global numbering.
	scope, err := resolver.CurrentScope(resolverContext(id.New(), id.Nil()))
	require.NoError(t, err)
	assert.False(t, scope.IsBranchScoped())
}

func TestCurrentScope_ModeReadPerCall(t *testing.T) {
	comp := NewCompany("Acme Traders")
	comp.CodeGeneration = sequence.ModeGlobal

	branchID := id.New()
	resolver := NewScopeResolver(
		NewService(&fakeCompanyRepo{current: comp}),
		fakeBranchOrdinals{branchID: 7},
	)
	ctx := resolverContext(id.New(), branchID)

	scope, err := resolver.CurrentScope(ctx)
	require.NoError(t, err)
	require.False(t, scope.IsBranchScoped())

	// Flipping the company setting takes effect on the very next code.
	comp.CodeGeneration = sequence.ModeBranch
	scope, err = resolver.CurrentScope(ctx)
	require.NoError(t, err)
	require.True(t, scope.IsBranchScoped())
	assert.Equal(t, 7, scope.BranchNumber)
}

func TestCompanyValidate_Mode(t *testing.T) {
	comp := NewCompany("Acme Traders")
	require.NoError(t, comp.Validate(context.Background()))

	comp.CodeGeneration = "per-warehouse"
	require.Error(t, comp.Validate(context.Background()))
}
