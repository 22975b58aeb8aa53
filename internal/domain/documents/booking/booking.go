// Package booking provides the Booking document: a customer reservation with
// an optional advance. Bookings never touch the stock register; goods leave
// on the linked product delivery.
package booking

import (
	"context"
	"time"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

// Booking represents a customer reservation.
type Booking struct {
	entity.Document

	// CustomerID is the reserving party
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// DeliveryDate is the promised hand-over date
	DeliveryDate *time.Time `db:"delivery_date" json:"deliveryDate,omitempty"`

	// AdvanceAmount is the deposit taken with the booking
	AdvanceAmount types.Amount `db:"advance_amount" json:"advanceAmount"`

	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   types.Amount   `db:"total_amount" json:"totalAmount"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one reserved item.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`
	UnitID    id.ID `db:"unit_id" json:"unitId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
	Rate     types.Amount   `db:"rate" json:"rate"`
	Amount   types.Amount   `db:"amount" json:"amount"`
}

// NewBooking creates a new booking.
func NewBooking(customerID id.ID) *Booking {
	return &Booking{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (b *Booking) AddLine(productID, unitID id.ID, quantity types.Quantity, rate types.Amount) {
	b.Lines = append(b.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(b.Lines) + 1,
		ProductID: productID,
		UnitID:    unitID,
		Quantity:  quantity,
		Rate:      rate,
		Amount:    quantity.Mul(rate),
	})
	b.RecalculateTotals()
}

// RecalculateTotals rederives header totals from lines.
func (b *Booking) RecalculateTotals() {
	b.TotalQuantity = types.Zero
	b.TotalAmount = types.Zero
	for _, line := range b.Lines {
		b.TotalQuantity = b.TotalQuantity.Add(line.Quantity)
		b.TotalAmount = b.TotalAmount.Add(line.Amount)
	}
}

// Validate implements entity.Validatable.
func (b *Booking) Validate(ctx context.Context) error {
	if err := b.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(b.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if len(b.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	if b.AdvanceAmount.IsNegative() {
		return apperror.NewValidation("advance cannot be negative").
			WithDetail("field", "advanceAmount")
	}
	for i, line := range b.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}

// Repository defines the interface for Booking persistence.
type Repository interface {
	domain.DocumentRepository[*Booking]
}

// Service provides business operations for bookings.
type Service struct {
	*domain.DocumentService[*Booking]
}

// NewService creates a new booking service. No stock wiring: reservations
// have no register effect.
func NewService(repo Repository, generator sequence.Generator, scopes domain.ScopeResolver) *Service {
	return &Service{
		DocumentService: domain.NewDocumentService(domain.DocumentServiceConfig[*Booking]{
			Repo:       repo,
			Generator:  generator,
			Scopes:     scopes,
			EntityName: "booking",
			DocType:    "booking",
			Prefix:     "BOK",
		}),
	}
}
