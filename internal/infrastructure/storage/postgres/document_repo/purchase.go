package document_repo

import (
	"tradebooks/internal/domain/documents/purchase"
)

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Purchase, purchase.Line]
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo() *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			"doc_purchases", "doc_purchase_lines",
			[]string{"number", "reference_no", "note"},
			func() *purchase.Purchase { return &purchase.Purchase{} },
			func(d *purchase.Purchase) []purchase.Line { return d.Lines },
			func(d *purchase.Purchase, lines []purchase.Line) { d.Lines = lines },
		),
	}
}

var _ purchase.Repository = (*PurchaseRepo)(nil)
