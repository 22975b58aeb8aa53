package sales

import (
	"context"
	"fmt"

	"tradebooks/internal/core/sequence"
	"tradebooks/internal/domain"
	"tradebooks/internal/domain/registers/stock"
)

// Repository defines the interface for Sales persistence.
type Repository interface {
	domain.DocumentRepository[*Sales]
}

// Service provides business operations for sales invoices.
// Sales can drive the running quantity negative: the register accepts the
// posting and low-stock reporting picks it up later.
type Service struct {
	*domain.DocumentService[*Sales]
	conversions domain.ConversionSource
}

// NewService creates a new sales service.
func NewService(
	repo Repository,
	stockSvc *stock.Service,
	conversions domain.ConversionSource,
	generator sequence.Generator,
	scopes domain.ScopeResolver,
) *Service {
	svc := &Service{conversions: conversions}

	svc.DocumentService = domain.NewDocumentService(domain.DocumentServiceConfig[*Sales]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     scopes,
		Stock:      stockSvc,
		EntityName: "sales invoice",
		DocType:    "sales",
		Kind:       domain.NumberInvoice,
		Postings:   svc.postings,
	})

	return svc
}

func (s *Service) postings(ctx context.Context, doc *Sales) ([]stock.Posting, error) {
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
			Rate:             line.Rate,
		})
	}
	return out, nil
}
