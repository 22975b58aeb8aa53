package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testContext() context.Context {
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   id.New(),
		TenantID: id.New(),
	})
	return tenant.WithTxManager(ctx, passTxManager{})
}

// fakeUnitRepo implements the conversion methods plus the CRUD the tests
// reach; the embedded interface panics on anything else, which would mean
// the test exercised an unexpected path.
type fakeUnitRepo struct {
	domain.CatalogRepository[*Unit]

	units       map[id.ID]*Unit
	conversions []*Conversion

	identityDeleteRows int64
	deleted            []id.ID
	factor             *Conversion
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: make(map[id.ID]*Unit)}
}

func (f *fakeUnitRepo) Create(ctx context.Context, u *Unit) error {
	f.units[u.ID] = u
	return nil
}

func (f *fakeUnitRepo) GetByID(ctx context.Context, unitID id.ID) (*Unit, error) {
	u, ok := f.units[unitID]
	if !ok {
		return nil, apperror.NewNotFound("unit", unitID.String())
	}
	return u, nil
}

func (f *fakeUnitRepo) Delete(ctx context.Context, unitID id.ID) error {
	f.deleted = append(f.deleted, unitID)
	delete(f.units, unitID)
	return nil
}

func (f *fakeUnitRepo) CreateConversion(ctx context.Context, c *Conversion) error {
	f.conversions = append(f.conversions, c)
	return nil
}

func (f *fakeUnitRepo) ListConversions(ctx context.Context, unitID id.ID) ([]*Conversion, error) {
	return f.conversions, nil
}

func (f *fakeUnitRepo) DeleteIdentityConversion(ctx context.Context, unitID id.ID) (int64, error) {
	return f.identityDeleteRows, nil
}

func (f *fakeUnitRepo) ConversionFactor(ctx context.Context, unitID id.ID) (*Conversion, error) {
	if f.factor == nil {
		return nil, apperror.NewNotFound("unit conversion", unitID.String())
	}
	return f.factor, nil
}

func TestCreate_AddsIdentityConversion(t *testing.T) {
	repo := newFakeUnitRepo()
	svc := NewService(repo, &sequence.MockGenerator{})

	u := NewUnit("Piece", "pcs")
	require.NoError(t, svc.Create(testContext(), u))

	assert.NotEmpty(t, u.Code)
	require.Len(t, repo.conversions, 1)

	conv := repo.conversions[0]
	assert.True(t, conv.IsIdentity())
	assert.Equal(t, u.ID, conv.UnitID)
	assert.Equal(t, u.ID, conv.BaseUnitID)
}

func TestDelete_BaseUnitStaysWhenReferenced(t *testing.T) {
	repo := newFakeUnitRepo()
	repo.identityDeleteRows = 0
	svc := NewService(repo, &sequence.MockGenerator{})

	u := NewUnit("Piece", "pcs")
	repo.units[u.ID] = u

	err := svc.Delete(testContext(), u.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
	assert.Empty(t, repo.deleted, "unit row must stay when its conversion is referenced")
}

func TestDelete_RemovesUnitWithIdentityConversion(t *testing.T) {
	repo := newFakeUnitRepo()
	repo.identityDeleteRows = 1
	svc := NewService(repo, &sequence.MockGenerator{})

	u := NewUnit("Piece", "pcs")
	repo.units[u.ID] = u

	require.NoError(t, svc.Delete(testContext(), u.ID))
	assert.Equal(t, []id.ID{u.ID}, repo.deleted)
}

func TestFactorToBase(t *testing.T) {
	repo := newFakeUnitRepo()
	svc := NewService(repo, &sequence.MockGenerator{})
	ctx := testContext()

	// No conversion rows: identity factor.
	factor, err := svc.FactorToBase(ctx, id.New())
	require.NoError(t, err)
	assert.True(t, factor.Equal(types.One))

	repo.factor = &Conversion{ConversionValue: types.FromInt(12)}
	factor, err = svc.FactorToBase(ctx, id.New())
	require.NoError(t, err)
	assert.True(t, factor.Equal(types.FromInt(12)))
}

func TestAddConversion_Validates(t *testing.T) {
	repo := newFakeUnitRepo()
	svc := NewService(repo, &sequence.MockGenerator{})
	ctx := testContext()

	bad := &Conversion{UnitID: id.New(), BaseUnitID: id.New(), ConversionValue: types.Zero}
	err := svc.AddConversion(ctx, bad)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	good := &Conversion{UnitID: id.New(), BaseUnitID: id.New(), ConversionValue: types.FromInt(12)}
	require.NoError(t, svc.AddConversion(ctx, good))
	require.Len(t, repo.conversions, 1)
	assert.False(t, repo.conversions[0].IsIdentity())
}
