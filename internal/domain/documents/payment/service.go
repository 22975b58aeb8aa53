package payment

import (
	"context"

	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/domain"
)

// Service provides business operations for payments.
type Service struct {
	*domain.DocumentService[*Payment]
	repo Repository
}

// NewService creates a new payment service.
func NewService(repo Repository, generator sequence.Generator, scopes domain.ScopeResolver) *Service {
	svc := &Service{repo: repo}

	svc.DocumentService = domain.NewDocumentService(domain.DocumentServiceConfig[*Payment]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     scopes,
		EntityName: "payment",
		DocType:    "payment",
		Prefix:     "PAY",
	})

	svc.Hooks().OnBeforeCreate(svc.normalize)
	svc.Hooks().OnBeforeUpdate(svc.normalize)

	return svc
}

func (s *Service) normalize(ctx context.Context, p *Payment) error {
	p.Normalize()
	return nil
}

// Delete soft-deletes a payment: the row stays for the audit trail with the
// deletion triple set.
func (s *Service) Delete(ctx context.Context, paymentID id.ID) error {
	p, err := s.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if p.IsDeleted {
		return apperror.NewConflict("payment is already deleted").
			WithDetail("payment_id", paymentID.String())
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SoftDelete(ctx, paymentID, appctx.GetUserID(ctx))
	})
}

// BatchDelete soft-deletes several payments in one transaction.
func (s *Service) BatchDelete(ctx context.Context, paymentIDs []id.ID) error {
	if len(paymentIDs) == 0 {
		return nil
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, paymentID := range paymentIDs {
			if err := s.Delete(ctx, paymentID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Archive marks a payment archived. Archiving is independent of deletion:
// a deleted payment can still be archived and vice versa.
func (s *Service) Archive(ctx context.Context, paymentID id.ID) error {
	return s.setArchived(ctx, paymentID, true)
}

// Unarchive clears the archive triple.
func (s *Service) Unarchive(ctx context.Context, paymentID id.ID) error {
	return s.setArchived(ctx, paymentID, false)
}

func (s *Service) setArchived(ctx context.Context, paymentID id.ID, archived bool) error {
	if _, err := s.GetByID(ctx, paymentID); err != nil {
		return err
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetArchived(ctx, paymentID, archived, appctx.GetUserID(ctx))
	})
}
