// Package productdelivery provides the ProductDelivery document: booked goods
// handed over to the customer. Unlike plain sales, deliveries are guarded:
// a line whose base-unit quantity exceeds receipts minus prior deliveries is
// rejected with an insufficient-stock error.
package productdelivery

import (
	"context"
	"fmt"

	"tradebooks/internal/core/appctx"
	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
	"tradebooks/internal/domain/registers/stock"
)

// ProductDelivery represents a goods delivery document.
type ProductDelivery struct {
	entity.Document

	// CustomerID is the receiving party
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// BookingID links the reservation being fulfilled
	BookingID *id.ID `db:"booking_id" json:"bookingId,omitempty"`

	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one delivered item.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`
	UnitID    id.ID `db:"unit_id" json:"unitId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
}

// NewProductDelivery creates a new delivery document.
func NewProductDelivery(customerID id.ID) *ProductDelivery {
	return &ProductDelivery{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		Lines:      make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (d *ProductDelivery) AddLine(productID, unitID id.ID, quantity types.Quantity) {
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
func (d *ProductDelivery) RecalculateTotals() {
	d.TotalQuantity = types.Zero
	for _, line := range d.Lines {
		d.TotalQuantity = d.TotalQuantity.Add(line.Quantity)
	}
}

// Validate implements entity.Validatable.
func (d *ProductDelivery) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(d.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
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

// Repository defines the interface for ProductDelivery persistence.
type Repository interface {
	domain.DocumentRepository[*ProductDelivery]
}

// Service provides business operations for deliveries.
type Service struct {
	*domain.DocumentService[*ProductDelivery]
	stock       *stock.Service
	conversions domain.ConversionSource
}

// NewService creates a new delivery service.
func NewService(
	repo Repository,
	stockSvc *stock.Service,
	conversions domain.ConversionSource,
	generator sequence.Generator,
	scopes domain.ScopeResolver,
) *Service {
	svc := &Service{stock: stockSvc, conversions: conversions}

	svc.DocumentService = domain.NewDocumentService(domain.DocumentServiceConfig[*ProductDelivery]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     scopes,
		Stock:      stockSvc,
		EntityName: "product delivery",
		DocType:    "productdelivery",
		Prefix:     "DLV",
		Postings:   svc.postings,
	})

	svc.Hooks().OnBeforeCreate(svc.checkDeliverable)
	svc.Hooks().OnBeforeUpdate(svc.checkDeliverable)

	return svc
}

// checkDeliverable rejects lines exceeding receipts minus prior deliveries.
// Concurrent deliveries can race past this check; isolation is the store's
// concern, not the service's.
func (s *Service) checkDeliverable(ctx context.Context, doc *ProductDelivery) error {
	branchID := doc.BranchID
	if id.IsNil(branchID) {
		// Branch stamping happens at save time; a fresh document carries
		// the requester's branch.
		branchID = appctx.GetBranchID(ctx)
	}
	for _, line := range doc.Lines {
		factor, err := s.conversions.FactorToBase(ctx, line.UnitID)
		if err != nil {
			return fmt.Errorf("conversion for line %d: %w", line.LineNo, err)
		}
		required := line.Quantity.Mul(factor)
		if err := s.stock.CheckDeliverable(ctx, branchID, line.ProductID, required); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) postings(ctx context.Context, doc *ProductDelivery) ([]stock.Posting, error) {
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
