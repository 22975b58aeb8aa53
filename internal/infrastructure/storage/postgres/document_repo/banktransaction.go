package document_repo

import (
	"tradebooks/internal/domain/documents/banktransaction"
)

// BankTransactionRepo implements banktransaction.Repository. Bank
// transactions have no table part.
type BankTransactionRepo struct {
	*BaseDocumentRepo[*banktransaction.BankTransaction, struct{}]
}

// NewBankTransactionRepo creates a new bank transaction repository.
func NewBankTransactionRepo() *BankTransactionRepo {
	return &BankTransactionRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*banktransaction.BankTransaction, struct{}](
			"doc_bank_transactions", "",
			[]string{"number", "particulars", "note"},
			func() *banktransaction.BankTransaction { return &banktransaction.BankTransaction{} },
			nil,
			nil,
		),
	}
}

var _ banktransaction.Repository = (*BankTransactionRepo)(nil)
