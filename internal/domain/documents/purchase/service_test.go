package purchase

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
	"tradebooks/internal/domain/registers/stock"
)

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testContext(branchID id.ID) context.Context {
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   id.New(),
		TenantID: id.New(),
		BranchID: branchID,
	})
	return tenant.WithTxManager(ctx, passTxManager{})
}

type fakePurchaseRepo struct {
	docs map[id.ID]*Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{docs: make(map[id.ID]*Purchase)}
}

func (f *fakePurchaseRepo) Create(ctx context.Context, doc *Purchase) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakePurchaseRepo) GetByID(ctx context.Context, docID id.ID) (*Purchase, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", docID.String())
	}
	return doc, nil
}

func (f *fakePurchaseRepo) Update(ctx context.Context, doc *Purchase) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakePurchaseRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(f.docs, docID)
	return nil
}

func (f *fakePurchaseRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Purchase], error) {
	return domain.ListResult[*Purchase]{}, nil
}

// fakeStockRepo tracks running quantities keyed by product.
type fakeStockRepo struct {
	quantities map[id.ID]types.Quantity
	rates      map[id.ID]types.Amount
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{
		quantities: make(map[id.ID]types.Quantity),
		rates:      make(map[id.ID]types.Amount),
	}
}

func (f *fakeStockRepo) ApplyDelta(ctx context.Context, branchID, productID id.ID, delta types.Quantity, rate *types.Amount) error {
	f.quantities[productID] = f.quantities[productID].Add(delta)
	if rate != nil {
		f.rates[productID] = *rate
	}
	return nil
}

func (f *fakeStockRepo) GetQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	return f.quantities[productID], nil
}

func (f *fakeStockRepo) GetStock(ctx context.Context, branchID, productID id.ID) (*stock.Stock, error) {
	return &stock.Stock{BranchID: branchID, ProductID: productID, Quantity: f.quantities[productID]}, nil
}

func (f *fakeStockRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*stock.Stock, error) {
	return nil, nil
}

func (f *fakeStockRepo) DeliverableQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	return f.quantities[productID], nil
}

// fakeConversions maps unit ids to base-unit factors.
type fakeConversions map[id.ID]types.Quantity

func (f fakeConversions) FactorToBase(ctx context.Context, unitID id.ID) (types.Quantity, error) {
	if factor, ok := f[unitID]; ok {
		return factor, nil
	}
	return types.One, nil
}

func TestCreate_PostsLinesToStockInBaseUnits(t *testing.T) {
	repo := newFakePurchaseRepo()
	stockRepo := newFakeStockRepo()
	boxUnit, pieceUnit := id.New(), id.New()
	conversions := fakeConversions{boxUnit: types.FromInt(12)}

	svc := NewService(repo, stock.NewService(stockRepo), conversions,
		&sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	boxed, loose := id.New(), id.New()
	doc := NewPurchase(id.New())
	doc.AddLine(boxed, boxUnit, types.FromInt(2), types.FromInt(10))
	doc.AddLine(loose, pieceUnit, types.FromInt(5), types.FromInt(3))

	require.NoError(t, svc.Create(testContext(id.New()), doc))

	assert.Equal(t, "PUR-000001", doc.Number)
	assert.True(t, stockRepo.quantities[boxed].Equal(types.FromInt(24)),
		"2 boxes of 12 must land as 24 base units, got %s", stockRepo.quantities[boxed])
	assert.True(t, stockRepo.quantities[loose].Equal(types.FromInt(5)))
}

func TestCreate_RecordsLastPurchaseRate(t *testing.T) {
	repo := newFakePurchaseRepo()
	stockRepo := newFakeStockRepo()
	svc := NewService(repo, stock.NewService(stockRepo), fakeConversions{},
		&sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	productID := id.New()
	doc := NewPurchase(id.New())
	doc.AddLine(productID, id.New(), types.FromInt(3), types.MustFromString("7.25"))

	require.NoError(t, svc.Create(testContext(id.New()), doc))

	rate, ok := stockRepo.rates[productID]
	require.True(t, ok)
	assert.True(t, rate.Equal(types.MustFromString("7.25")))
}

func TestDelete_ReversesStockToZero(t *testing.T) {
	repo := newFakePurchaseRepo()
	stockRepo := newFakeStockRepo()
	boxUnit := id.New()
	svc := NewService(repo, stock.NewService(stockRepo), fakeConversions{boxUnit: types.FromInt(6)},
		&sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	ctx := testContext(id.New())
	productID := id.New()

	doc := NewPurchase(id.New())
	doc.AddLine(productID, boxUnit, types.FromInt(4), types.FromInt(10))
	require.NoError(t, svc.Create(ctx, doc))
	require.True(t, stockRepo.quantities[productID].Equal(types.FromInt(24)))

	require.NoError(t, svc.Delete(ctx, doc.ID))
	assert.True(t, stockRepo.quantities[productID].IsZero(),
		"delete must net the register to zero, got %s", stockRepo.quantities[productID])
	assert.NotContains(t, repo.docs, doc.ID)
}

func TestCreate_ValidationStopsBeforePersisting(t *testing.T) {
	repo := newFakePurchaseRepo()
	stockRepo := newFakeStockRepo()
	svc := NewService(repo, stock.NewService(stockRepo), fakeConversions{},
		&sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	doc := NewPurchase(id.New()) // no lines
	err := svc.Create(testContext(id.New()), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, repo.docs)
	assert.Empty(t, stockRepo.quantities)
}

func TestBatchDelete_ReversesEveryDocument(t *testing.T) {
	repo := newFakePurchaseRepo()
	stockRepo := newFakeStockRepo()
	svc := NewService(repo, stock.NewService(stockRepo), fakeConversions{},
		&sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	ctx := testContext(id.New())
	productID := id.New()

	first := NewPurchase(id.New())
	first.AddLine(productID, id.New(), types.FromInt(10), types.FromInt(1))
	second := NewPurchase(id.New())
	second.AddLine(productID, id.New(), types.FromInt(7), types.FromInt(1))

	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, svc.Create(ctx, second))
	require.True(t, stockRepo.quantities[productID].Equal(types.FromInt(17)))

	require.NoError(t, svc.BatchDelete(ctx, []id.ID{first.ID, second.ID}))
	assert.True(t, stockRepo.quantities[productID].IsZero())
	assert.Empty(t, repo.docs)
}
