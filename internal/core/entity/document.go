package entity

import (
	"context"
	"time"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/id"
)

// Document is the base type for business documents: purchases, sales,
// receipts, deliveries, bookings, bank transactions, payments.
type Document struct {
	BaseEntity

	// Number is the sequential business code for the document
	// (generated on create when empty)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// BranchID is the issuing branch, stamped from the current user
	BranchID id.ID `db:"branch_id" json:"branchId"`

	// Note is an optional user comment
	Note string `db:"note" json:"note,omitempty"`

	AuditFields
}

// NewDocument creates a Document dated now.
func NewDocument() Document {
	return Document{
		BaseEntity: NewBaseEntity(),
		Date:       time.Now().UTC(),
	}
}

// Validate implements Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// GetID returns the primary key.
func (d *Document) GetID() id.ID { return d.ID }

// GetNumber returns the document number.
func (d *Document) GetNumber() string { return d.Number }

// SetNumber assigns the document number (used by number generation).
func (d *Document) SetNumber(number string) { d.Number = number }

// GetDate returns the business date.
func (d *Document) GetDate() time.Time { return d.Date }

// GetBranchID returns the issuing branch.
func (d *Document) GetBranchID() id.ID { return d.BranchID }

// StampCreate stamps tenant, branch and creation audit fields.
func (d *Document) StampCreate(ctx context.Context) {
	d.BaseEntity.StampCreate(ctx, &d.AuditFields)
	if id.IsNil(d.BranchID) {
		d.BranchID = appctx.GetBranchID(ctx)
	}
}

// StampUpdate stamps update audit fields.
func (d *Document) StampUpdate(ctx context.Context) {
	d.BaseEntity.StampUpdate(ctx, &d.AuditFields)
}
