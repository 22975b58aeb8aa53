// Package stock provides the stock register: one running-quantity row per
// (branch, product), adjusted in the same transaction as the document write.
package stock

import (
	"time"

	"tradebooks/internal/core/id"
	"tradebooks/internal/core/types"
)

// Direction of a stock posting.
type Direction string

const (
	// In increases stock (purchase, receive, sale return)
	In Direction = "in"

	// Out decreases stock (sale, damage, delivery)
	Out Direction = "out"
)

// Stock is the running balance row for one product at one branch.
// Quantity is kept in the product's base unit.
type Stock struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"-"`

	BranchID  id.ID `db:"branch_id" json:"branchId"`
	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity is the current running total in base units
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// LastPurchaseRate tracks the most recent inbound purchase price
	LastPurchaseRate types.Amount `db:"last_purchase_rate" json:"lastPurchaseRate"`

	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Posting is one document line's effect on the register.
type Posting struct {
	ProductID id.ID
	BranchID  id.ID

	// Quantity as entered on the document line, in the line's unit
	Quantity types.Quantity

	// ConversionFactor multiplies Quantity into base units
	ConversionFactor types.Quantity

	Direction Direction

	// Rate is the per-base-unit price; recorded as LastPurchaseRate for
	// inbound purchase postings
	Rate types.Amount

	// IsPurchase marks postings that refresh LastPurchaseRate
	IsPurchase bool
}

// BaseQuantity returns the posting quantity converted to base units.
func (p Posting) BaseQuantity() types.Quantity {
	factor := p.ConversionFactor
	if factor.IsZero() {
		factor = types.One
	}
	return p.Quantity.Mul(factor)
}

// SignedQuantity returns the base quantity with the direction applied.
func (p Posting) SignedQuantity() types.Quantity {
	q := p.BaseQuantity()
	if p.Direction == Out {
		return q.Neg()
	}
	return q
}

// Inverse returns the posting that exactly undoes this one.
func (p Posting) Inverse() Posting {
	inv := p
	if p.Direction == In {
		inv.Direction = Out
	} else {
		inv.Direction = In
	}
	// Reversals never rewrite the purchase rate.
	inv.IsPurchase = false
	return inv
}
