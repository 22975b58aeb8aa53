package bankaccount

import (
	"context"

	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

// Repository defines the interface for BankAccount persistence.
type Repository interface {
	domain.CatalogRepository[*BankAccount]

	// GetForUpdate retrieves the account with a row lock.
	GetForUpdate(ctx context.Context, accountID id.ID) (*BankAccount, error)

	// AdjustBalance adds delta (possibly negative) to the running balance.
	AdjustBalance(ctx context.Context, accountID id.ID, delta types.Amount) error
}
