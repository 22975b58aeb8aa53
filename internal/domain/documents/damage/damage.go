// Package damage provides the Damage document: goods written off as broken,
// expired or lost. Each line decreases stock with no availability guard.
package damage

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

// Damage represents a damage write-off document.
type Damage struct {
	entity.Document

	// Reason describes why the goods were written off
	Reason *string `db:"reason" json:"reason,omitempty"`

	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one written-off item.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`
	UnitID    id.ID `db:"unit_id" json:"unitId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
}

// NewDamage creates a new damage document.
func NewDamage() *Damage {
	return &Damage{
		Document: entity.NewDocument(),
		Lines:    make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (d *Damage) AddLine(productID, unitID id.ID, quantity types.Quantity) {
	d.Lines = append(d.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(d.Lines) + 1,
		ProductID: productID,
		UnitID:    unitID,
		Quantity:  quantity,
	})
	d.RecalculateTotals()
}

// RecalculateTotals rederives header totals from lines.
func (d *Damage) RecalculateTotals() {
	d.TotalQuantity = types.Zero
	for _, line := range d.Lines {
		d.TotalQuantity = d.TotalQuantity.Add(line.Quantity)
	}
}

// Validate implements entity.Validatable.
func (d *Damage) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}
	if len(d.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range d.Lines {
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

// Repository defines the interface for Damage persistence.
type Repository interface {
	domain.DocumentRepository[*Damage]
}

// Service provides business operations for damage documents.
type Service struct {
	*domain.DocumentService[*Damage]
	conversions domain.ConversionSource
}

// NewService creates a new damage service.
func NewService(
	repo Repository,
	stockSvc *stock.Service,
	conversions domain.ConversionSource,
	generator sequence.Generator,
	scopes domain.ScopeResolver,
) *Service {
	svc := &Service{conversions: conversions}

	svc.DocumentService = domain.NewDocumentService(domain.DocumentServiceConfig[*Damage]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     scopes,
		Stock:      stockSvc,
		EntityName: "damage",
		DocType:    "damage",
		Prefix:     "DMG",
		Postings:   svc.postings,
	})

	return svc
}

func (s *Service) postings(ctx context.Context, doc *Damage) ([]stock.Posting, error) {
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
			Direction:        stock.Out,
		})
	}
	return out, nil
}
