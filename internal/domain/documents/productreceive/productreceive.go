// Package productreceive provides the ProductReceive document: goods arriving
// into a branch outside a purchase (stock transfer in, opening stock,
// supplier consignment). Each line increases stock.
package productreceive

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

// ProductReceive represents a goods receive document.
type ProductReceive struct {
	entity.Document

	// SupplierID is optional: receives can come from transfers
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`

	// ReferenceNo links to the originating paper
	ReferenceNo *string `db:"reference_no" json:"referenceNo,omitempty"`

	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one received item.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`
	UnitID    id.ID `db:"unit_id" json:"unitId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
}

// NewProductReceive creates a new receive document.
func NewProductReceive() *ProductReceive {
	return &ProductReceive{
		Document: entity.NewDocument(),
		Lines:    make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (r *ProductReceive) AddLine(productID, unitID id.ID, quantity types.Quantity) {
	r.Lines = append(r.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(r.Lines) + 1,
		ProductID: productID,
		UnitID:    unitID,
		Quantity:  quantity,
	})
	r.RecalculateTotals()
}

// RecalculateTotals rederives header totals from lines.
func (r *ProductReceive) RecalculateTotals() {
	r.TotalQuantity = types.Zero
	for _, line := range r.Lines {
		r.TotalQuantity = r.TotalQuantity.Add(line.Quantity)
	}
}

// Validate implements entity.Validatable.
func (r *ProductReceive) Validate(ctx context.Context) error {
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

// Repository defines the interface for ProductReceive persistence.
type Repository interface {
	domain.DocumentRepository[*ProductReceive]
}

// Service provides business operations for receive documents.
type Service struct {
	*domain.DocumentService[*ProductReceive]
	conversions domain.ConversionSource
}

// NewService creates a new receive service.
func NewService(
	repo Repository,
	stockSvc *stock.Service,
	conversions domain.ConversionSource,
	generator sequence.Generator,
	scopes domain.ScopeResolver,
) *Service {
	svc := &Service{conversions: conversions}

	svc.DocumentService = domain.NewDocumentService(domain.DocumentServiceConfig[*ProductReceive]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     scopes,
		Stock:      stockSvc,
		EntityName: "product receive",
		DocType:    "productreceive",
		Prefix:     "REC",
		Postings:   svc.postings,
	})

	return svc
}

func (s *Service) postings(ctx context.Context, doc *ProductReceive) ([]stock.Posting, error) {
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
