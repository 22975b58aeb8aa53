// Package bankaccount provides the BankAccount catalog. The running balance
// lives on the account row and is adjusted by bank transactions in the same
// database transaction as the document write.
package bankaccount

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/types"
)

// BankAccount represents a company bank account.
type BankAccount struct {
	entity.Catalog

	// AccountNumber is the bank's account identifier
	AccountNumber string `db:"account_number" json:"accountNumber"`

	// BankName is the holding bank
	BankName string `db:"bank_name" json:"bankName"`

	// BranchName is the bank branch (not a company branch)
	BranchName *string `db:"branch_name" json:"branchName,omitempty"`

	// CurrentBalance is the running balance, never allowed below zero
	CurrentBalance types.Amount `db:"current_balance" json:"currentBalance"`
}

// NewBankAccount creates a new BankAccount with a zero balance.
func NewBankAccount(name, accountNumber, bankName string) *BankAccount {
	return &BankAccount{
		Catalog:       entity.NewCatalog("", name),
		AccountNumber: accountNumber,
		BankName:      bankName,
	}
}

// Validate implements entity.Validatable.
func (a *BankAccount) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}
	if a.AccountNumber == "" {
		return apperror.NewValidation("account number is required").
			WithDetail("field", "accountNumber")
	}
	if a.BankName == "" {
		return apperror.NewValidation("bank name is required").
			WithDetail("field", "bankName")
	}
	if a.CurrentBalance.IsNegative() {
		return apperror.NewValidation("balance cannot be negative").
			WithDetail("field", "currentBalance")
	}
	return nil
}
