// Package salereturn provides the SaleReturn document: goods coming back
// from a customer. Each line increases stock.
package salereturn

import (
	"context"
	"fmt"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
	"tradebooks/internal/domain/registers/stock"
)

// SaleReturn represents a sale return document.
type SaleReturn struct {
	entity.Document

	// CustomerID is the returning party
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// SalesID links the original invoice when known
	SalesID *id.ID `db:"sales_id" json:"salesId,omitempty"`

	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   types.Amount   `db:"total_amount" json:"totalAmount"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one returned item.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`
	UnitID    id.ID `db:"unit_id" json:"unitId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
	Rate     types.Amount   `db:"rate" json:"rate"`
	Amount   types.Amount   `db:"amount" json:"amount"`
}

// NewSaleReturn creates a new sale return document.
func NewSaleReturn() *SaleReturn {
	return &SaleReturn{
		Document: entity.NewDocument(),
		Lines:    make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (r *SaleReturn) AddLine(productID, unitID id.ID, quantity types.Quantity, rate types.Amount) {
	r.Lines = append(r.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(r.Lines) + 1,
		ProductID: productID,
		UnitID:    unitID,
		Quantity:  quantity,
		Rate:      rate,
		Amount:    quantity.Mul(rate),
	})
	r.RecalculateTotals()
}

// RecalculateTotals rederives header totals from lines.
func (r *SaleReturn) RecalculateTotals() {
	r.TotalQuantity = types.Zero
	r.TotalAmount = types.Zero
	for _, line := range r.Lines {
		r.TotalQuantity = r.TotalQuantity.Add(line.Quantity)
		r.TotalAmount = r.TotalAmount.Add(line.Amount)
	}
}

// Validate implements entity.Validatable.
func (r *SaleReturn) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}
	if len(r.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range r.Lines {
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

// Repository defines the interface for SaleReturn persistence.
type Repository interface {
	domain.DocumentRepository[*SaleReturn]
}

// Service provides business operations for sale returns.
type Service struct {
	*domain.DocumentService[*SaleReturn]
	conversions domain.ConversionSource
}

// NewService creates a new sale return service.
func NewService(
	repo Repository,
	stockSvc *stock.Service,
	conversions domain.ConversionSource,
	generator sequence.Generator,
	scopes domain.ScopeResolver,
) *Service {
	svc := &Service{conversions: conversions}

	svc.DocumentService = domain.NewDocumentService(domain.DocumentServiceConfig[*SaleReturn]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     scopes,
		Stock:      stockSvc,
		EntityName: "sale return",
		DocType:    "salereturn",
		Prefix:     "SRT",
		Postings:   svc.postings,
	})

	return svc
}

func (s *Service) postings(ctx context.Context, doc *SaleReturn) ([]stock.Posting, error) {
	out := make([]stock.Posting, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		factor, err := s.conversions.FactorToBase(ctx, line.UnitID)
		if err != nil {
			return nil, fmt.Errorf("conversion for line %d: %w", line.LineNo, err)
		}
		out = append(out, stock.Posting{
			ProductID:        line.ProductID,
			BranchID:         doc.BranchID,
			Quantity:         line.Quantity,
			ConversionFactor: factor,
			Direction:        stock.In,
		})
	}
	return out, nil
}
