// Package payment provides the Payment document: one cash-flow ledger entry
// for money paid to a supplier or received from a customer.
//
// Amounts are sign-normalized at rest: an outgoing payment submitted with a
// positive amount is stored negated, so ledger sums need no direction
// branching. NetAmount is derived from the stored amount. Payments are
// soft-deleted and archived with independent flag triples.
package payment

import (
	"context"
	"time"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
)

// Flow is the direction of money movement.
type Flow string

const (
	// FlowIn is money received (customer payments)
	FlowIn Flow = "in"

	// FlowOut is money paid (supplier payments)
	FlowOut Flow = "out"
)

// PartyType identifies the counterparty catalog.
type PartyType string

const (
	PartySupplier PartyType = "supplier"
	PartyCustomer PartyType = "customer"
)

// Payment represents one cash-flow ledger entry.
type Payment struct {
	entity.Document

	// PartyType and PartyID identify the counterparty
	PartyType PartyType `db:"party_type" json:"partyType"`
	PartyID   id.ID     `db:"party_id" json:"partyId"`

	// Flow is the money direction
	Flow Flow `db:"flow" json:"flow"`

	// Amount at rest: negative for FlowOut, positive for FlowIn
	Amount types.Amount `db:"amount" json:"amount"`

	// DiscountAmount is the settlement discount granted
	DiscountAmount types.Amount `db:"discount_amount" json:"discountAmount"`

	// AdjustmentValue is a manual correction applied to the net
	AdjustmentValue types.Amount `db:"adjustment_value" json:"adjustmentValue"`

	// NetAmount = Amount - DiscountAmount + AdjustmentValue,
	// derived from the stored (possibly negated) amount
	NetAmount types.Amount `db:"net_amount" json:"netAmount"`

	// PaymentMethod is cash, bank, cheque...
	PaymentMethod *string `db:"payment_method" json:"paymentMethod,omitempty"`

	// Soft delete triple
	IsDeleted   bool       `db:"is_deleted" json:"isDeleted"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
	DeletedByID *id.ID     `db:"deleted_by_id" json:"deletedById,omitempty"`

	// Archive triple, independent of deletion
	IsArchived   bool       `db:"is_archived" json:"isArchived"`
	ArchivedAt   *time.Time `db:"archived_at" json:"archivedAt,omitempty"`
	ArchivedByID *id.ID     `db:"archived_by_id" json:"archivedById,omitempty"`
}

// NewPayment creates a new payment with a positive submitted amount.
func NewPayment(partyType PartyType, partyID id.ID, flow Flow, amount types.Amount) *Payment {
	return &Payment{
		Document:  entity.NewDocument(),
		PartyType: partyType,
		PartyID:   partyID,
		Flow:      flow,
		Amount:    amount,
	}
}

// Normalize applies the at-rest sign convention and derives NetAmount.
// Called before every save.
func (p *Payment) Normalize() {
	if p.Flow == FlowOut && p.Amount.IsPositive() {
		p.Amount = p.Amount.Neg()
	}
	p.NetAmount = p.Amount.Sub(p.DiscountAmount).Add(p.AdjustmentValue)
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}
	switch p.PartyType {
	case PartySupplier, PartyCustomer:
	default:
		return apperror.NewValidation("invalid party type").
			WithDetail("field", "partyType").
			WithDetail("value", string(p.PartyType))
	}
	if id.IsNil(p.PartyID) {
		return apperror.NewValidation("party is required").
			WithDetail("field", "partyId")
	}
	switch p.Flow {
	case FlowIn, FlowOut:
	default:
		return apperror.NewValidation("invalid flow").
			WithDetail("field", "flow").
			WithDetail("value", string(p.Flow))
	}
	if p.Amount.IsZero() {
		return apperror.NewValidation("amount cannot be zero").
			WithDetail("field", "amount")
	}
	if p.DiscountAmount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discountAmount")
	}
	return nil
}
