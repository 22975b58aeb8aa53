package bankaccount

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

type fakeAccountRepo struct {
	domain.CatalogRepository[*BankAccount]

	account *BankAccount
	deltas  []types.Amount
}

func (f *fakeAccountRepo) GetForUpdate(ctx context.Context, accountID id.ID) (*BankAccount, error) {
	if f.account == nil || f.account.ID != accountID {
		return nil, apperror.NewNotFound("bank account", accountID.String())
	}
	return f.account, nil
}

func (f *fakeAccountRepo) AdjustBalance(ctx context.Context, accountID id.ID, delta types.Amount) error {
	f.deltas = append(f.deltas, delta)
	f.account.CurrentBalance = f.account.CurrentBalance.Add(delta)
	return nil
}

func accountWithBalance(balance types.Amount) *BankAccount {
	acc := NewBankAccount("Operating", "00112233", "City Bank")
	acc.CurrentBalance = balance
	return acc
}

func TestWithdraw_OverdrawRejected(t *testing.T) {
	repo := &fakeAccountRepo{account: accountWithBalance(types.FromInt(100))}
	svc := NewService(repo, &sequence.MockGenerator{})

	err := svc.Withdraw(context.Background(), repo.account.ID, types.MustFromString("100.01"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientFunds))
	assert.Empty(t, repo.deltas, "balance must not move on a rejected withdrawal")
}

func TestWithdraw_ExactBalanceAllowed(t *testing.T) {
	repo := &fakeAccountRepo{account: accountWithBalance(types.FromInt(100))}
	svc := NewService(repo, &sequence.MockGenerator{})

	require.NoError(t, svc.Withdraw(context.Background(), repo.account.ID, types.FromInt(100)))
	require.Len(t, repo.deltas, 1)
	assert.True(t, repo.deltas[0].Equal(types.FromInt(-100)))
	assert.True(t, repo.account.CurrentBalance.IsZero())
}

func TestDeposit_NeverRejected(t *testing.T) {
	repo := &fakeAccountRepo{account: accountWithBalance(types.Zero)}
	svc := NewService(repo, &sequence.MockGenerator{})

	require.NoError(t, svc.Deposit(context.Background(), repo.account.ID, types.MustFromString("0.01")))
	require.Len(t, repo.deltas, 1)
	assert.True(t, repo.deltas[0].Equal(types.MustFromString("0.01")))
}

func TestDepositWithdraw_RequirePositiveAmount(t *testing.T) {
	repo := &fakeAccountRepo{account: accountWithBalance(types.FromInt(100))}
	svc := NewService(repo, &sequence.MockGenerator{})
	ctx := context.Background()

	for _, amount := range []types.Amount{types.Zero, types.FromInt(-5)} {
		err := svc.Deposit(ctx, repo.account.ID, amount)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

		err = svc.Withdraw(ctx, repo.account.ID, amount)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	}
	assert.Empty(t, repo.deltas)
}

func TestWithdraw_UnknownAccount(t *testing.T) {
	repo := &fakeAccountRepo{account: accountWithBalance(types.FromInt(100))}
	svc := NewService(repo, &sequence.MockGenerator{})

	err := svc.Withdraw(context.Background(), id.New(), types.FromInt(10))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
