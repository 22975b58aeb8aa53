// Package purchase provides the Purchase document: goods bought from a
// supplier. Each line increases stock and refreshes the product's last
// purchase rate.
package purchase

import (
	"context"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
)

// Purchase represents a purchase document.
type Purchase struct {
	entity.Document

	// SupplierID is the selling party
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// ReferenceNo is the supplier's own document number
	ReferenceNo *string `db:"reference_no" json:"referenceNo,omitempty"`

	// Totals derived from lines
	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   types.Amount   `db:"total_amount" json:"totalAmount"`

	// PaidAmount is the portion settled at purchase time
	PaidAmount types.Amount `db:"paid_amount" json:"paidAmount"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line is one purchased item.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`
	UnitID    id.ID `db:"unit_id" json:"unitId"`

	// Quantity in the line's unit
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Rate per unit
	Rate types.Amount `db:"rate" json:"rate"`

	// Amount = Quantity * Rate
	Amount types.Amount `db:"amount" json:"amount"`
}

// NewPurchase creates a new purchase document.
func NewPurchase(supplierID id.ID) *Purchase {
	return &Purchase{
		Document:   entity.NewDocument(),
		SupplierID: supplierID,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (p *Purchase) AddLine(productID, unitID id.ID, quantity types.Quantity, rate types.Amount) {
	p.Lines = append(p.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(p.Lines) + 1,
		ProductID: productID,
		UnitID:    unitID,
		Quantity:  quantity,
		Rate:      rate,
		Amount:    quantity.Mul(rate),
	})
	p.RecalculateTotals()
}

// RecalculateTotals rederives header totals from lines.
func (p *Purchase) RecalculateTotals() {
	p.TotalQuantity = types.Zero
	p.TotalAmount = types.Zero
	for _, line := range p.Lines {
		p.TotalQuantity = p.TotalQuantity.Add(line.Quantity)
		p.TotalAmount = p.TotalAmount.Add(line.Amount)
	}
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}
	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range p.Lines {
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
		if line.Rate.IsNegative() {
			return apperror.NewValidation("rate cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
