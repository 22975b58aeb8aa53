package stock

import (
	"context"
	"fmt"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
	"tradebooks/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the calling document service: register writes
// always share the document's transaction.
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Apply posts document lines to the register. Inbound postings increase the
// running quantity, outbound decrease it. Quantities are converted to base
// units before applying. No negative-stock check happens here: plain sales
// and damage are allowed to drive the quantity below zero.
func (s *Service) Apply(ctx context.Context, postings []Posting) error {
	if len(postings) == 0 {
		return nil
	}

	for i, p := range postings {
		if !p.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("posting %d: quantity must be positive", i))
		}
		if id.IsNil(p.ProductID) {
			return apperror.NewValidation(fmt.Sprintf("posting %d: product is required", i))
		}
		if id.IsNil(p.BranchID) {
			return apperror.NewValidation(fmt.Sprintf("posting %d: branch is required", i))
		}

		var rate *types.Amount
		if p.IsPurchase && p.Direction == In {
			r := p.Rate
			rate = &r
		}

		if err := s.repo.ApplyDelta(ctx, p.BranchID, p.ProductID, p.SignedQuantity(), rate); err != nil {
			return fmt.Errorf("apply posting %d: %w", i, err)
		}
	}

	logger.Debug(ctx, "applied stock postings", "count", len(postings))
	return nil
}

// Reverse undoes previously applied postings. Apply followed by Reverse of
// the same lines nets the register to zero.
func (s *Service) Reverse(ctx context.Context, postings []Posting) error {
	inverted := make([]Posting, len(postings))
	for i, p := range postings {
		inverted[i] = p.Inverse()
	}
	return s.Apply(ctx, inverted)
}

// BatchReverse undoes the postings of every document in a batch delete.
func (s *Service) BatchReverse(ctx context.Context, postingsByDocument map[id.ID][]Posting) error {
	for docID, postings := range postingsByDocument {
		if err := s.Reverse(ctx, postings); err != nil {
			return fmt.Errorf("reverse document %s: %w", docID, err)
		}
	}
	return nil
}

// Quantity returns the current running quantity for a product at a branch.
func (s *Service) Quantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	return s.repo.GetQuantity(ctx, branchID, productID)
}

// AvailableForDelivery returns receipts minus prior deliveries. Only the
// product-delivery flow consults it; the running quantity is not used for
// this check.
func (s *Service) AvailableForDelivery(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	return s.repo.DeliverableQuantity(ctx, branchID, productID)
}

// CheckDeliverable rejects a delivery line whose base-unit quantity exceeds
// the deliverable total.
func (s *Service) CheckDeliverable(ctx context.Context, branchID, productID id.ID, required types.Quantity) error {
	available, err := s.repo.DeliverableQuantity(ctx, branchID, productID)
	if err != nil {
		return fmt.Errorf("deliverable quantity for %s: %w", productID, err)
	}
	if available.LessThan(required) {
		return apperror.NewInsufficientStock(
			productID.String(),
			required.String(),
			available.String(),
		)
	}
	return nil
}

// BranchStock returns all non-zero register rows for a branch.
func (s *Service) BranchStock(ctx context.Context, branchID id.ID) ([]*Stock, error) {
	return s.repo.ListByBranch(ctx, branchID)
}
