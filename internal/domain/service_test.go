package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/tenant"
)

type testCatalog struct {
	entity.Catalog
}

func newTestCatalog(name string) *testCatalog {
	return &testCatalog{Catalog: entity.NewCatalog("", name)}
}

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testContext(tenantID id.ID) context.Context {
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   id.New(),
		TenantID: tenantID,
	})
	return tenant.WithTxManager(ctx, passTxManager{})
}

type fakeCatalogRepo struct {
	entities  map[id.ID]*testCatalog
	codeTaken bool
	deleted   []id.ID
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{entities: make(map[id.ID]*testCatalog)}
}

func (f *fakeCatalogRepo) Create(ctx context.Context, e *testCatalog) error {
	f.entities[e.ID] = e
	return nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, entityID id.ID) (*testCatalog, error) {
	e, ok := f.entities[entityID]
	if !ok {
		return nil, apperror.NewNotFound("test catalog", entityID.String())
	}
	return e, nil
}

func (f *fakeCatalogRepo) GetByCode(ctx context.Context, code string) (*testCatalog, error) {
	for _, e := range f.entities {
		if e.Code == code {
			return e, nil
		}
	}
	return nil, apperror.NewNotFound("test catalog", code)
}

func (f *fakeCatalogRepo) Update(ctx context.Context, e *testCatalog) error {
	f.entities[e.ID] = e
	return nil
}

func (f *fakeCatalogRepo) Delete(ctx context.Context, entityID id.ID) error {
	f.deleted = append(f.deleted, entityID)
	delete(f.entities, entityID)
	return nil
}

func (f *fakeCatalogRepo) List(ctx context.Context, filter ListFilter) (ListResult[*testCatalog], error) {
	return ListResult[*testCatalog]{}, nil
}

func (f *fakeCatalogRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := f.entities[entityID]
	return ok, nil
}

func (f *fakeCatalogRepo) ExistsByCode(ctx context.Context, code string, excludeID id.ID) (bool, error) {
	return f.codeTaken, nil
}

func (f *fakeCatalogRepo) Lookup(ctx context.Context, filter ListFilter) ([]LookupItem, error) {
	return nil, nil
}

func newTestCatalogService(repo *fakeCatalogRepo, gen sequence.Generator) *CatalogService[*testCatalog] {
	return NewCatalogService(CatalogServiceConfig[*testCatalog]{
		Repo:       repo,
		Generator:  gen,
		EntityName: "test catalog",
		CodePrefix: "TST",
	})
}

func TestCatalogCreate_GeneratesCodeWhenEmpty(t *testing.T) {
	repo := newFakeCatalogRepo()
	tenantID := id.New()

	var gotScope sequence.Scope
	gen := &sequence.MockGenerator{
		NextCodeFunc: func(ctx context.Context, docType, prefix string, scope sequence.Scope) (string, error) {
			gotScope = scope
			return prefix + "-000042", nil
		},
	}
	svc := newTestCatalogService(repo, gen)

	e := newTestCatalog("Alpha")
	require.NoError(t, svc.Create(testContext(tenantID), e))

	assert.Equal(t, "TST-000042", e.Code)
	assert.Equal(t, tenantID, gotScope.TenantID)
	assert.False(t, gotScope.IsBranchScoped())
	assert.Equal(t, tenantID, e.TenantID, "tenant stamped from context")
	require.Len(t, repo.entities, 1)
}

func TestCatalogCreate_KeepsSubmittedCode(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := newTestCatalogService(repo, &sequence.MockGenerator{})

	e := newTestCatalog("Alpha")
	e.Code = "CUSTOM-1"
	require.NoError(t, svc.Create(testContext(id.New()), e))
	assert.Equal(t, "CUSTOM-1", e.Code)
}

func TestCatalogCreate_DuplicateCodeRejected(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.codeTaken = true
	svc := newTestCatalogService(repo, &sequence.MockGenerator{})

	e := newTestCatalog("Alpha")
	e.Code = "CUSTOM-1"
	err := svc.Create(testContext(id.New()), e)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
	assert.Empty(t, repo.entities)
}

func TestCatalogCreate_ValidationFirst(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := newTestCatalogService(repo, &sequence.MockGenerator{})

	e := newTestCatalog("") // name required
	err := svc.Create(testContext(id.New()), e)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCatalogUpdate_BumpsVersion(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := newTestCatalogService(repo, &sequence.MockGenerator{})
	ctx := testContext(id.New())

	e := newTestCatalog("Alpha")
	require.NoError(t, svc.Create(ctx, e))
	require.Equal(t, 1, e.Version)

	e.Name = "Beta"
	require.NoError(t, svc.Update(ctx, e))
	assert.Equal(t, 2, e.Version)
}

func TestCatalogDelete_BeforeDeleteHookGates(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := newTestCatalogService(repo, &sequence.MockGenerator{})
	ctx := testContext(id.New())

	e := newTestCatalog("Alpha")
	require.NoError(t, svc.Create(ctx, e))

	svc.Hooks().OnBeforeDelete(func(ctx context.Context, e *testCatalog) error {
		return apperror.NewConflict("still referenced")
	})

	err := svc.Delete(ctx, e.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
	assert.Empty(t, repo.deleted, "a gating hook must keep the row")
}

func TestCatalogGetByID_NotFoundNormalized(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := newTestCatalogService(repo, &sequence.MockGenerator{})

	_, err := svc.GetByID(testContext(id.New()), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
