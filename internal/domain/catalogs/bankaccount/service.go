package bankaccount

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

// Service provides business logic for the BankAccount catalog.
type Service struct {
	*domain.CatalogService[*BankAccount]
	repo Repository
}

// NewService creates a new BankAccount service.
func NewService(repo Repository, generator sequence.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*BankAccount]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     domain.GlobalScopeResolver{},
		EntityName: "bank account",
		CodePrefix: "BNK",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// Deposit increases the account balance. Runs inside the caller's
// transaction; deposits are never rejected.
func (s *Service) Deposit(ctx context.Context, accountID id.ID, amount types.Amount) error {
	if !amount.IsPositive() {
		return apperror.NewValidation("deposit amount must be positive").
			WithDetail("field", "amount")
	}
	return s.repo.AdjustBalance(ctx, accountID, amount)
}

// Withdraw decreases the account balance. A withdrawal that would drive the
// balance negative is rejected; the row is locked so the check and the
// update see the same balance.
func (s *Service) Withdraw(ctx context.Context, accountID id.ID, amount types.Amount) error {
	if !amount.IsPositive() {
		return apperror.NewValidation("withdrawal amount must be positive").
			WithDetail("field", "amount")
	}

	acc, err := s.repo.GetForUpdate(ctx, accountID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("bank account", accountID.String())
		}
		return err
	}

	if acc.CurrentBalance.LessThan(amount) {
		return apperror.NewInsufficientFunds(
			accountID.String(),
			amount.String(),
			acc.CurrentBalance.String(),
		)
	}

	return s.repo.AdjustBalance(ctx, accountID, amount.Neg())
}
