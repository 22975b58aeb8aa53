package document_repo

import (
	"tradebooks/internal/domain/documents/sales"
)

// SalesRepo implements sales.Repository.
type SalesRepo struct {
	*BaseDocumentRepo[*sales.Sales, sales.Line]
}

// NewSalesRepo creates a new sales repository.
func NewSalesRepo() *SalesRepo {
	return &SalesRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			"doc_sales", "doc_sales_lines",
			[]string{"number", "note"},
			func() *sales.Sales { return &sales.Sales{} },
			func(d *sales.Sales) []sales.Line { return d.Lines },
			func(d *sales.Sales, lines []sales.Line) { d.Lines = lines },
		),
	}
}

var _ sales.Repository = (*SalesRepo)(nil)
