package payment

import (
	"context"
	"testing"
	"time"

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

func testContext(userID id.ID) context.Context {
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   userID,
		TenantID: id.New(),
		BranchID: id.New(),
	})
	return tenant.WithTxManager(ctx, passTxManager{})
}

type fakePaymentRepo struct {
	payments map[id.ID]*Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[id.ID]*Payment)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, paymentID id.ID) (*Payment, error) {
	p, ok := f.payments[paymentID]
	if !ok {
		return nil, apperror.NewNotFound("payment", paymentID.String())
	}
	return p, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, p *Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) Delete(ctx context.Context, paymentID id.ID) error {
	delete(f.payments, paymentID)
	return nil
}

func (f *fakePaymentRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Payment], error) {
	return domain.ListResult[*Payment]{}, nil
}

func (f *fakePaymentRepo) SoftDelete(ctx context.Context, paymentID id.ID, byID id.ID) error {
	p, ok := f.payments[paymentID]
	if !ok {
		return apperror.NewNotFound("payment", paymentID.String())
	}
	now := time.Now().UTC()
	p.IsDeleted = true
	p.DeletedAt = &now
	p.DeletedByID = &byID
	return nil
}

func (f *fakePaymentRepo) SetArchived(ctx context.Context, paymentID id.ID, archived bool, byID id.ID) error {
	p, ok := f.payments[paymentID]
	if !ok {
		return apperror.NewNotFound("payment", paymentID.String())
	}
	p.IsArchived = archived
	if archived {
		now := time.Now().UTC()
		p.ArchivedAt = &now
		p.ArchivedByID = &byID
	} else {
		p.ArchivedAt = nil
		p.ArchivedByID = nil
	}
	return nil
}

func TestNormalize_OutgoingStoredNegated(t *testing.T) {
	p := NewPayment(PartySupplier, id.New(), FlowOut, types.FromInt(100))
	p.DiscountAmount = types.FromInt(10)
	p.AdjustmentValue = types.FromInt(5)

	p.Normalize()

	assert.True(t, p.Amount.Equal(types.FromInt(-100)))
	// Net derives from the stored, already negated amount.
	assert.True(t, p.NetAmount.Equal(types.FromInt(-105)), "got %s", p.NetAmount)
}

func TestNormalize_IncomingKeepsSign(t *testing.T) {
	p := NewPayment(PartyCustomer, id.New(), FlowIn, types.FromInt(100))
	p.DiscountAmount = types.FromInt(10)
	p.AdjustmentValue = types.FromInt(5)

	p.Normalize()

	assert.True(t, p.Amount.Equal(types.FromInt(100)))
	assert.True(t, p.NetAmount.Equal(types.FromInt(95)))
}

func TestNormalize_Idempotent(t *testing.T) {
	p := NewPayment(PartySupplier, id.New(), FlowOut, types.FromInt(100))

	p.Normalize()
	p.Normalize()

	assert.True(t, p.Amount.Equal(types.FromInt(-100)), "second pass must not flip the sign back")
}

func TestCreate_NormalizesBeforeSave(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewService(repo, &sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	p := NewPayment(PartySupplier, id.New(), FlowOut, types.FromInt(250))
	require.NoError(t, svc.Create(testContext(id.New()), p))

	stored := repo.payments[p.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.Amount.Equal(types.FromInt(-250)))
	assert.NotEmpty(t, stored.Number)
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewService(repo, &sequence.MockGenerator{}, domain.GlobalScopeResolver{})

	userID := id.New()
	ctx := testContext(userID)

	p := NewPayment(PartyCustomer, id.New(), FlowIn, types.FromInt(50))
	require.NoError(t, svc.Create(ctx, p))

	require.NoError(t, svc.Delete(ctx, p.ID))

	stored := repo.payments[p.ID]
	require.NotNil(t, stored, "the row must survive deletion")
	assert.True(t, stored.IsDeleted)
	require.NotNil(t, stored.DeletedByID)
	assert.Equal(t, userID, *stored.DeletedByID)
	assert.NotNil(t, stored.DeletedAt)
}

func TestDelete_AlreadyDeleted(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewService(repo, &sequence.MockGenerator{}, domain.GlobalScopeResolver{})
	ctx := testContext(id.New())

	p := NewPayment(PartyCustomer, id.New(), FlowIn, types.FromInt(50))
	require.NoError(t, svc.Create(ctx, p))
	require.NoError(t, svc.Delete(ctx, p.ID))

	err := svc.Delete(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}

func TestBatchDelete_SoftDeletesAll(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewService(repo, &sequence.MockGenerator{}, domain.GlobalScopeResolver{})
	ctx := testContext(id.New())

	first := NewPayment(PartyCustomer, id.New(), FlowIn, types.FromInt(10))
	second := NewPayment(PartySupplier, id.New(), FlowOut, types.FromInt(20))
	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, svc.Create(ctx, second))

	require.NoError(t, svc.BatchDelete(ctx, []id.ID{first.ID, second.ID}))

	assert.True(t, repo.payments[first.ID].IsDeleted)
	assert.True(t, repo.payments[second.ID].IsDeleted)
}

func TestArchive_IndependentOfDeletion(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewService(repo, &sequence.MockGenerator{}, domain.GlobalScopeResolver{})
	ctx := testContext(id.New())

	p := NewPayment(PartyCustomer, id.New(), FlowIn, types.FromInt(50))
	require.NoError(t, svc.Create(ctx, p))

	require.NoError(t, svc.Delete(ctx, p.ID))
	require.NoError(t, svc.Archive(ctx, p.ID))

	stored := repo.payments[p.ID]
	assert.True(t, stored.IsDeleted)
	assert.True(t, stored.IsArchived)
	assert.NotNil(t, stored.ArchivedAt)

	require.NoError(t, svc.Unarchive(ctx, p.ID))
	stored = repo.payments[p.ID]
	assert.False(t, stored.IsArchived)
	assert.Nil(t, stored.ArchivedAt)
	assert.Nil(t, stored.ArchivedByID)
	assert.True(t, stored.IsDeleted, "unarchiving must not touch the deletion triple")
}

func TestValidate_Payment(t *testing.T) {
	p := NewPayment(PartySupplier, id.New(), FlowOut, types.Zero)
	err := p.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	p = NewPayment("lender", id.New(), FlowOut, types.FromInt(10))
	require.Error(t, p.Validate(context.Background()))

	p = NewPayment(PartySupplier, id.Nil(), FlowOut, types.FromInt(10))
	require.Error(t, p.Validate(context.Background()))

	p = NewPayment(PartySupplier, id.New(), "sideways", types.FromInt(10))
	require.Error(t, p.Validate(context.Background()))

	p = NewPayment(PartySupplier, id.New(), FlowOut, types.FromInt(10))
	p.DiscountAmount = types.FromInt(-1)
	require.Error(t, p.Validate(context.Background()))

	p = NewPayment(PartySupplier, id.New(), FlowOut, types.FromInt(10))
	require.NoError(t, p.Validate(context.Background()))
}
