package document_repo

import (
	"tradebooks/internal/domain/documents/salereturn"
)

// SaleReturnRepo implements salereturn.Repository.
type SaleReturnRepo struct {
	*BaseDocumentRepo[*salereturn.SaleReturn, salereturn.Line]
}

// NewSaleReturnRepo creates a new sale return repository.
func NewSaleReturnRepo() *SaleReturnRepo {
	return &SaleReturnRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			"doc_sale_returns", "doc_sale_return_lines",
			[]string{"number", "note"},
			func() *salereturn.SaleReturn { return &salereturn.SaleReturn{} },
			func(d *salereturn.SaleReturn) []salereturn.Line { return d.Lines },
			func(d *salereturn.SaleReturn, lines []salereturn.Line) { d.Lines = lines },
		),
	}
}

var _ salereturn.Repository = (*SaleReturnRepo)(nil)
