// Package sales provides the Sales invoice document. Invoice numbers are
// monthly sequences prefixed with YYMM; lines decrease stock with no
// availability guard.
package sales

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
)

// Sales represents a sales invoice.
type Sales struct {
	entity.Document

	// CustomerID is the buying party; nil for walk-in sales
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// Totals derived from lines
	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   types.Amount   `db:"total_amount" json:"totalAmount"`

	// DiscountAmount is an invoice-level discount
	DiscountAmount types.Amount `db:"discount_amount" json:"discountAmount"`

	// GrandTotal = TotalAmount - DiscountAmount
	GrandTotal types.Amount `db:"grand_total" json:"grandTotal"`

	// PaidAmount is the portion settled at sale time
	PaidAmount types.Amount `db:"paid_amount" json:"paidAmount"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one sold item.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`
	UnitID    id.ID `db:"unit_id" json:"unitId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
	Rate     types.Amount   `db:"rate" json:"rate"`
	Amount   types.Amount   `db:"amount" json:"amount"`
}

// NewSales creates a new sales invoice.
func NewSales() *Sales {
	return &Sales{
		Document: entity.NewDocument(),
		Lines:    make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (s *Sales) AddLine(productID, unitID id.ID, quantity types.Quantity, rate types.Amount) {
	s.Lines = append(s.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(s.Lines) + 1,
		ProductID: productID,
		UnitID:    unitID,
		Quantity:  quantity,
		Rate:      rate,
		Amount:    quantity.Mul(rate),
	})
	s.RecalculateTotals()
}

// RecalculateTotals rederives header totals from lines.
func (s *Sales) RecalculateTotals() {
	s.TotalQuantity = types.Zero
	s.TotalAmount = types.Zero
	for _, line := range s.Lines {
		s.TotalQuantity = s.TotalQuantity.Add(line.Quantity)
		s.TotalAmount = s.TotalAmount.Add(line.Amount)
	}
	s.GrandTotal = s.TotalAmount.Sub(s.DiscountAmount)
}

// Validate implements entity.Validatable.
func (s *Sales) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}
	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	if s.DiscountAmount.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discountAmount")
	}
	for i, line := range s.Lines {
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
