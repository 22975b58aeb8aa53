package document_repo

import (
	"tradebooks/internal/domain/documents/productdelivery"
)

// ProductDeliveryRepo implements productdelivery.Repository.
type ProductDeliveryRepo struct {
	*BaseDocumentRepo[*productdelivery.ProductDelivery, productdelivery.Line]
}

// NewProductDeliveryRepo creates a new product delivery repository.
func NewProductDeliveryRepo() *ProductDeliveryRepo {
	return &ProductDeliveryRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			"doc_product_deliveries", "doc_product_delivery_lines",
			[]string{"number", "note"},
			func() *productdelivery.ProductDelivery { return &productdelivery.ProductDelivery{} },
			func(d *productdelivery.ProductDelivery) []productdelivery.Line { return d.Lines },
			func(d *productdelivery.ProductDelivery, lines []productdelivery.Line) { d.Lines = lines },
		),
	}
}

var _ productdelivery.Repository = (*ProductDeliveryRepo)(nil)
