package document_repo

import (
	"tradebooks/internal/domain/documents/productreceive"
)

// ProductReceiveRepo implements productreceive.Repository.
type ProductReceiveRepo struct {
	*BaseDocumentRepo[*productreceive.ProductReceive, productreceive.Line]
}

// NewProductReceiveRepo creates a new product receive repository.
func NewProductReceiveRepo() *ProductReceiveRepo {
	return &ProductReceiveRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			"doc_product_receives", "doc_product_receive_lines",
			[]string{"number", "reference_no", "note"},
			func() *productreceive.ProductReceive { return &productreceive.ProductReceive{} },
			func(d *productreceive.ProductReceive) []productreceive.Line { return d.Lines },
			func(d *productreceive.ProductReceive, lines []productreceive.Line) { d.Lines = lines },
		),
	}
}

var _ productreceive.Repository = (*ProductReceiveRepo)(nil)
