package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain/catalogs/bankaccount"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const bankAccountTable = "cat_bank_accounts"

// BankAccountRepo implements bankaccount.Repository.
type BankAccountRepo struct {
	*BaseCatalogRepo[*bankaccount.BankAccount]
}

// NewBankAccountRepo creates a new bank account repository.
func NewBankAccountRepo() *BankAccountRepo {
	return &BankAccountRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			bankAccountTable,
			postgres.ExtractDBColumns[bankaccount.BankAccount](),
			[]string{"name", "code", "account_number", "bank_name"},
			func() *bankaccount.BankAccount { return &bankaccount.BankAccount{} },
		),
	}
}

// AdjustBalance adds delta to the running balance in place. The caller is
// expected to hold the row lock (GetForUpdate) when the adjustment depends
// on the current balance.
func (r *BankAccountRepo) AdjustBalance(ctx context.Context, accountID id.ID, delta types.Amount) error {
	q := r.Builder().
		Update(bankAccountTable).
		Set("current_balance", squirrel.Expr("current_balance + ?", delta)).
		Where(r.tenantScope(ctx)).
		Where(squirrel.Eq{"id": accountID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build balance update: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(bankAccountTable, accountID.String())
	}

	return nil
}

var _ bankaccount.Repository = (*BankAccountRepo)(nil)
