package productdelivery

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

type fakeDeliveryRepo struct {
	docs map[id.ID]*ProductDelivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{docs: make(map[id.ID]*ProductDelivery)}
}

func (f *fakeDeliveryRepo) Create(ctx context.Context, doc *ProductDelivery) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDeliveryRepo) GetByID(ctx context.Context, docID id.ID) (*ProductDelivery, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("product delivery", docID.String())
	}
	return doc, nil
}

func (f *fakeDeliveryRepo) Update(ctx context.Context, doc *ProductDelivery) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDeliveryRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(f.docs, docID)
	return nil
}

func (f *fakeDeliveryRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*ProductDelivery], error) {
	return domain.ListResult[*ProductDelivery]{}, nil
}

// fakeStockRepo serves a fixed deliverable figure and records deltas.
type fakeStockRepo struct {
	deliverable types.Quantity
	deltas      []types.Quantity
}

func (f *fakeStockRepo) ApplyDelta(ctx context.Context, branchID, productID id.ID, delta types.Quantity, rate *types.Amount) error {
	f.deltas = append(f.deltas, delta)
	return nil
}

func (f *fakeStockRepo) GetQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	return types.Zero, nil
}

func (f *fakeStockRepo) GetStock(ctx context.Context, branchID, productID id.ID) (*stock.Stock, error) {
	return nil, apperror.NewNotFound("stock", productID.String())
}

func (f *fakeStockRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*stock.Stock, error) {
	return nil, nil
}

func (f *fakeStockRepo) DeliverableQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	return f.deliverable, nil
}

type fakeConversions map[id.ID]types.Quantity

func (f fakeConversions) FactorToBase(ctx context.Context, unitID id.ID) (types.Quantity, error) {
	if factor, ok := f[unitID]; ok {
		return factor, nil
	}
	return types.One, nil
}

func TestCreate_RejectsDeliveryBeyondReceipts(t *testing.T) {
	repo := newFakeDeliveryRepo()
	stockRepo := &fakeStockRepo{deliverable: types.FromInt(5)}
	boxUnit := id.New()
	svc := NewService(repo, stock.NewService(stockRepo), fakeConversions{boxUnit: types.FromInt(12)},
		&sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	doc := NewProductDelivery(id.New())
	doc.AddLine(id.New(), boxUnit, types.One) // 12 base units against 5 deliverable

	err := svc.Create(testContext(id.New()), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
	assert.Empty(t, repo.docs, "the document must not be written when the guard fires")
	assert.Empty(t, stockRepo.deltas)
}

func TestCreate_WithinDeliverablePostsOutbound(t *testing.T) {
	repo := newFakeDeliveryRepo()
	stockRepo := &fakeStockRepo{deliverable: types.FromInt(24)}
	boxUnit := id.New()
	svc := NewService(repo, stock.NewService(stockRepo), fakeConversions{boxUnit: types.FromInt(12)},
		&sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	doc := NewProductDelivery(id.New())
	doc.AddLine(id.New(), boxUnit, types.FromInt(2))

	require.NoError(t, svc.Create(testContext(id.New()), doc))

	assert.Equal(t, "DLV-000001", doc.Number)
	require.Len(t, stockRepo.deltas, 1)
	assert.True(t, stockRepo.deltas[0].Equal(types.FromInt(-24)),
		"delivery must decrease stock by the base-unit quantity, got %s", stockRepo.deltas[0])
}

func TestCreate_GuardUsesRequesterBranchWhenUnset(t *testing.T) {
	repo := newFakeDeliveryRepo()
	stockRepo := &fakeStockRepo{deliverable: types.FromInt(10)}
	svc := NewService(repo, stock.NewService(stockRepo), fakeConversions{},
		&sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	branchID := id.New()
	doc := NewProductDelivery(id.New())
	doc.AddLine(id.New(), id.New(), types.FromInt(10))

	require.NoError(t, svc.Create(testContext(branchID), doc))
	assert.Equal(t, branchID, doc.BranchID, "branch stamped from the requester at save time")
}
