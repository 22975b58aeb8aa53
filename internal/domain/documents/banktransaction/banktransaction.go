// Package banktransaction provides the BankTransaction document: a deposit
// into or withdrawal from a company bank account. The account balance moves
// in the same transaction as the document write; an over-drawing withdrawal
// is rejected, a deposit never is. Bank transactions are immutable: correct
// a mistake by deleting and re-entering.
package banktransaction

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

// TxType is the direction of a bank transaction.
type TxType string

const (
	TypeDeposit  TxType = "deposit"
	TypeWithdraw TxType = "withdraw"
)

// BankTransaction represents one bank account movement.
type BankTransaction struct {
	entity.Document

	// BankAccountID is the affected account
	BankAccountID id.ID `db:"bank_account_id" json:"bankAccountId"`

	// Type is deposit or withdraw
	Type TxType `db:"type" json:"type"`

	// Amount is always positive; Type carries the direction
	Amount types.Amount `db:"amount" json:"amount"`

	// Particulars describes the movement
	Particulars *string `db:"particulars" json:"particulars,omitempty"`
}

// NewBankTransaction creates a new bank transaction.
func NewBankTransaction(accountID id.ID, txType TxType, amount types.Amount) *BankTransaction {
	return &BankTransaction{
		Document:      entity.NewDocument(),
		BankAccountID: accountID,
		Type:          txType,
		Amount:        amount,
	}
}

// Validate implements entity.Validatable.
func (t *BankTransaction) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(t.BankAccountID) {
		return apperror.NewValidation("bank account is required").
			WithDetail("field", "bankAccountId")
	}
	switch t.Type {
	case TypeDeposit, TypeWithdraw:
	default:
		return apperror.NewValidation("invalid transaction type").
			WithDetail("field", "type").
			WithDetail("value", string(t.Type))
	}
	if !t.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	return nil
}

// Repository defines the interface for BankTransaction persistence.
type Repository interface {
	domain.DocumentRepository[*BankTransaction]
}

// BalanceAdjuster moves a bank account balance inside the current
// transaction. Satisfied by the bankaccount service.
type BalanceAdjuster interface {
	Deposit(ctx context.Context, accountID id.ID, amount types.Amount) error
	Withdraw(ctx context.Context, accountID id.ID, amount types.Amount) error
}

// Service provides business operations for bank transactions.
type Service struct {
	*domain.DocumentService[*BankTransaction]
	accounts BalanceAdjuster
}

// NewService creates a new bank transaction service.
func NewService(
	repo Repository,
	accounts BalanceAdjuster,
	generator sequence.Generator,
	scopes domain.ScopeResolver,
) *Service {
	svc := &Service{accounts: accounts}

	svc.DocumentService = domain.NewDocumentService(domain.DocumentServiceConfig[*BankTransaction]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     scopes,
		EntityName: "bank transaction",
		DocType:    "banktransaction",
		Prefix:     "BTX",
	})

	svc.Hooks().On(domain.AfterCreate, svc.applyBalance)
	svc.Hooks().OnBeforeDelete(svc.reverseBalance)

	return svc
}

// applyBalance moves the account balance with the document write. Runs
// inside the create transaction, so an over-drawing withdrawal rolls the
// document back too.
func (s *Service) applyBalance(ctx context.Context, t *BankTransaction) error {
	if t.Type == TypeDeposit {
		return s.accounts.Deposit(ctx, t.BankAccountID, t.Amount)
	}
	return s.accounts.Withdraw(ctx, t.BankAccountID, t.Amount)
}

// reverseBalance undoes the balance effect before the row is removed.
// Deleting a deposit withdraws, so it can itself fail on insufficient funds.
func (s *Service) reverseBalance(ctx context.Context, t *BankTransaction) error {
	if t.Type == TypeDeposit {
		return s.accounts.Withdraw(ctx, t.BankAccountID, t.Amount)
	}
	return s.accounts.Deposit(ctx, t.BankAccountID, t.Amount)
}

// Update is not supported: amending a posted bank movement would desync the
// running balance. Delete and re-enter instead.
func (s *Service) Update(ctx context.Context, t *BankTransaction) error {
	return apperror.NewBusinessRule(apperror.CodeBusinessRule,
		"bank transactions cannot be edited; delete and re-enter")
}
