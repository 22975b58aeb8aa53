package purchase

import (
	"context"
	"fmt"

	"tradebooks/internal/core/sequence"
	"tradebooks/internal/domain"
	"tradebooks/internal/domain/registers/stock"
)

// Service provides business operations for purchase documents.
type Service struct {
	*domain.DocumentService[*Purchase]
	conversions domain.ConversionSource
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	stockSvc *stock.Service,
	conversions domain.ConversionSource,
	generator sequence.Generator,
	scopes domain.ScopeResolver,
) *Service {
	svc := &Service{conversions: conversions}

	svc.DocumentService = domain.NewDocumentService(domain.DocumentServiceConfig[*Purchase]{
		Repo:       repo,
		Generator:  generator,
		Scopes:     scopes,
		Stock:      stockSvc,
		EntityName: "purchase",
		DocType:    "purchase",
		Prefix:     "PUR",
		Postings:   svc.postings,
	})

	return svc
}

// postings maps purchase lines to inbound stock postings. The rate per base
// unit becomes the product's last purchase rate.
func (s *Service) postings(ctx context.Context, doc *Purchase) ([]stock.Posting, error) {
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
			Rate:             line.Rate,
			IsPurchase:       true,
		})
	}
	return out, nil
}
