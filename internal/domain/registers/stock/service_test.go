package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
)

type appliedDelta struct {
	branchID  id.ID
	productID id.ID
	delta     types.Quantity
	rate      *types.Amount
}

type fakeStockRepo struct {
	applied     []appliedDelta
	quantities  map[id.ID]types.Quantity
	deliverable types.Quantity
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{quantities: make(map[id.ID]types.Quantity)}
}

func (f *fakeStockRepo) ApplyDelta(ctx context.Context, branchID, productID id.ID, delta types.Quantity, rate *types.Amount) error {
	f.applied = append(f.applied, appliedDelta{branchID, productID, delta, rate})
	f.quantities[productID] = f.quantities[productID].Add(delta)
	return nil
}

func (f *fakeStockRepo) GetQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	return f.quantities[productID], nil
}

func (f *fakeStockRepo) GetStock(ctx context.Context, branchID, productID id.ID) (*Stock, error) {
	return &Stock{BranchID: branchID, ProductID: productID, Quantity: f.quantities[productID]}, nil
}

func (f *fakeStockRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*Stock, error) {
	return nil, nil
}

func (f *fakeStockRepo) DeliverableQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	return f.deliverable, nil
}

func TestApply_ConvertsToBaseUnits(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo)

	productID := id.New()
	err := svc.Apply(context.Background(), []Posting{{
		ProductID:        productID,
		BranchID:         id.New(),
		Quantity:         types.FromInt(2),
		ConversionFactor: types.FromInt(12),
		Direction:        In,
	}})
	require.NoError(t, err)

	require.Len(t, repo.applied, 1)
	assert.True(t, repo.applied[0].delta.Equal(types.FromInt(24)),
		"got %s", repo.applied[0].delta)
}

func TestApply_ZeroFactorDefaultsToIdentity(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo)

	err := svc.Apply(context.Background(), []Posting{{
		ProductID: id.New(),
		BranchID:  id.New(),
		Quantity:  types.FromInt(3),
		Direction: Out,
	}})
	require.NoError(t, err)

	require.Len(t, repo.applied, 1)
	assert.True(t, repo.applied[0].delta.Equal(types.FromInt(-3)))
}

func TestApply_RejectsInvalidPostings(t *testing.T) {
	svc := NewService(newFakeStockRepo())
	ctx := context.Background()

	err := svc.Apply(ctx, []Posting{{
		ProductID: id.New(),
		BranchID:  id.New(),
		Quantity:  types.Zero,
		Direction: In,
	}})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	err = svc.Apply(ctx, []Posting{{
		BranchID:  id.New(),
		Quantity:  types.One,
		Direction: In,
	}})
	require.Error(t, err)

	err = svc.Apply(ctx, []Posting{{
		ProductID: id.New(),
		Quantity:  types.One,
		Direction: In,
	}})
	require.Error(t, err)
}

func TestApply_PurchaseRateOnlyOnInboundPurchases(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo)

	rate := types.MustFromString("10.50")
	postings := []Posting{
		{
			ProductID: id.New(), BranchID: id.New(),
			Quantity: types.One, Direction: In,
			Rate: rate, IsPurchase: true,
		},
		{
			ProductID: id.New(), BranchID: id.New(),
			Quantity: types.One, Direction: Out,
			Rate: rate,
		},
	}
	require.NoError(t, svc.Apply(context.Background(), postings))

	require.Len(t, repo.applied, 2)
	require.NotNil(t, repo.applied[0].rate)
	assert.True(t, repo.applied[0].rate.Equal(rate))
	assert.Nil(t, repo.applied[1].rate)
}

func TestApplyThenReverse_NetsToZero(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo)

	productID := id.New()
	postings := []Posting{{
		ProductID:        productID,
		BranchID:         id.New(),
		Quantity:         types.FromInt(5),
		ConversionFactor: types.FromInt(6),
		Direction:        In,
		Rate:             types.FromInt(100),
		IsPurchase:       true,
	}}

	ctx := context.Background()
	require.NoError(t, svc.Apply(ctx, postings))
	require.NoError(t, svc.Reverse(ctx, postings))

	assert.True(t, repo.quantities[productID].IsZero(),
		"expected zero, got %s", repo.quantities[productID])

	// The reversal must not rewrite the last purchase rate.
	require.Len(t, repo.applied, 2)
	assert.Nil(t, repo.applied[1].rate)
}

func TestCheckDeliverable(t *testing.T) {
	repo := newFakeStockRepo()
	repo.deliverable = types.FromInt(5)
	svc := NewService(repo)

	ctx := context.Background()
	branchID, productID := id.New(), id.New()

	require.NoError(t, svc.CheckDeliverable(ctx, branchID, productID, types.FromInt(5)))

	err := svc.CheckDeliverable(ctx, branchID, productID, types.FromInt(6))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
}

func TestPosting_Inverse(t *testing.T) {
	p := Posting{
		ProductID:        id.New(),
		BranchID:         id.New(),
		Quantity:         types.FromInt(2),
		ConversionFactor: types.FromInt(12),
		Direction:        In,
		Rate:             types.FromInt(10),
		IsPurchase:       true,
	}

	inv := p.Inverse()
	assert.Equal(t, Out, inv.Direction)
	assert.False(t, inv.IsPurchase)
	assert.True(t, p.SignedQuantity().Add(inv.SignedQuantity()).IsZero())

	back := inv.Inverse()
	assert.Equal(t, In, back.Direction)
}
