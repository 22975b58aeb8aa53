package banktransaction

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
		BranchID: id.New(),
	})
	return tenant.WithTxManager(ctx, passTxManager{})
}

type fakeTxRepo struct {
	docs map[id.ID]*BankTransaction
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{docs: make(map[id.ID]*BankTransaction)}
}

func (f *fakeTxRepo) Create(ctx context.Context, t *BankTransaction) error {
	f.docs[t.ID] = t
	return nil
}

func (f *fakeTxRepo) GetByID(ctx context.Context, docID id.ID) (*BankTransaction, error) {
	t, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("bank transaction", docID.String())
	}
	return t, nil
}

func (f *fakeTxRepo) Update(ctx context.Context, t *BankTransaction) error {
	f.docs[t.ID] = t
	return nil
}

func (f *fakeTxRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(f.docs, docID)
	return nil
}

func (f *fakeTxRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*BankTransaction], error) {
	return domain.ListResult[*BankTransaction]{}, nil
}

type balanceCall struct {
	op     string
	amount types.Amount
}

type fakeAdjuster struct {
	calls       []balanceCall
	withdrawErr error
}

func (f *fakeAdjuster) Deposit(ctx context.Context, accountID id.ID, amount types.Amount) error {
	f.calls = append(f.calls, balanceCall{"deposit", amount})
	return nil
}

func (f *fakeAdjuster) Withdraw(ctx context.Context, accountID id.ID, amount types.Amount) error {
	if f.withdrawErr != nil {
		return f.withdrawErr
	}
	f.calls = append(f.calls, balanceCall{"withdraw", amount})
	return nil
}

func newTestService(repo *fakeTxRepo, adjuster *fakeAdjuster) *Service {
	return NewService(repo, adjuster, &sequence.MockGenerator{}, domain.GlobalScopeResolver{})
}

func TestCreate_DepositMovesBalance(t *testing.T) {
	repo := newFakeTxRepo()
	adjuster := &fakeAdjuster{}
	svc := newTestService(repo, adjuster)

	doc := NewBankTransaction(id.New(), TypeDeposit, types.FromInt(500))
	require.NoError(t, svc.Create(testContext(), doc))

	assert.NotEmpty(t, doc.Number)
	require.Len(t, adjuster.calls, 1)
	assert.Equal(t, "deposit", adjuster.calls[0].op)
	assert.True(t, adjuster.calls[0].amount.Equal(types.FromInt(500)))
}

func TestCreate_OverdrawFailsWholeWrite(t *testing.T) {
	repo := newFakeTxRepo()
	adjuster := &fakeAdjuster{
		withdrawErr: apperror.NewInsufficientFunds(id.New().String(), "500", "100"),
	}
	svc := newTestService(repo, adjuster)

	doc := NewBankTransaction(id.New(), TypeWithdraw, types.FromInt(500))
	err := svc.Create(testContext(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientFunds))
}

func TestDelete_ReversesBalanceEffect(t *testing.T) {
	repo := newFakeTxRepo()
	adjuster := &fakeAdjuster{}
	svc := newTestService(repo, adjuster)
	ctx := testContext()

	deposit := NewBankTransaction(id.New(), TypeDeposit, types.FromInt(300))
	require.NoError(t, svc.Create(ctx, deposit))

	withdraw := NewBankTransaction(id.New(), TypeWithdraw, types.FromInt(120))
	require.NoError(t, svc.Create(ctx, withdraw))

	adjuster.calls = nil

	// Deleting a deposit withdraws the money back.
	require.NoError(t, svc.Delete(ctx, deposit.ID))
	require.Len(t, adjuster.calls, 1)
	assert.Equal(t, "withdraw", adjuster.calls[0].op)
	assert.True(t, adjuster.calls[0].amount.Equal(types.FromInt(300)))
	assert.NotContains(t, repo.docs, deposit.ID)

	// Deleting a withdrawal deposits it back.
	require.NoError(t, svc.Delete(ctx, withdraw.ID))
	require.Len(t, adjuster.calls, 2)
	assert.Equal(t, "deposit", adjuster.calls[1].op)
}

func TestUpdate_NotSupported(t *testing.T) {
	svc := newTestService(newFakeTxRepo(), &fakeAdjuster{})

	doc := NewBankTransaction(id.New(), TypeDeposit, types.FromInt(10))
	err := svc.Update(testContext(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeBusinessRule))
}

func TestValidate_BankTransaction(t *testing.T) {
	ctx := context.Background()

	doc := NewBankTransaction(id.Nil(), TypeDeposit, types.FromInt(10))
	require.Error(t, doc.Validate(ctx))

	doc = NewBankTransaction(id.New(), "transfer", types.FromInt(10))
	require.Error(t, doc.Validate(ctx))

	doc = NewBankTransaction(id.New(), TypeWithdraw, types.Zero)
	require.Error(t, doc.Validate(ctx))

	doc = NewBankTransaction(id.New(), TypeWithdraw, types.FromInt(10))
	require.NoError(t, doc.Validate(ctx))
}
