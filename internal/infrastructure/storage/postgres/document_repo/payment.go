package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/domain/documents/payment"
)

const paymentTable = "doc_payments"

// PaymentRepo implements payment.Repository. Payments carry no table part
// and are never physically removed; listings hide soft-deleted rows.
type PaymentRepo struct {
	*BaseDocumentRepo[*payment.Payment, struct{}]
}

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo() *PaymentRepo {
	r := &PaymentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*payment.Payment, struct{}](
			paymentTable, "",
			[]string{"number", "note"},
			func() *payment.Payment { return &payment.Payment{} },
			nil,
			nil,
		),
	}
	r.ScopeListWith(squirrel.Eq{"is_deleted": false})
	return r
}

// SoftDelete sets the deletion triple without removing the row.
func (r *PaymentRepo) SoftDelete(ctx context.Context, paymentID id.ID, byID id.ID) error {
	return r.setTriple(ctx, paymentID, map[string]any{
		"is_deleted":    true,
		"deleted_at":    time.Now().UTC(),
		"deleted_by_id": byID,
	})
}

// SetArchived flips the archive triple.
func (r *PaymentRepo) SetArchived(ctx context.Context, paymentID id.ID, archived bool, byID id.ID) error {
	values := map[string]any{"is_archived": archived}
	if archived {
		values["archived_at"] = time.Now().UTC()
		values["archived_by_id"] = byID
	} else {
		values["archived_at"] = nil
		values["archived_by_id"] = nil
	}
	return r.setTriple(ctx, paymentID, values)
}

func (r *PaymentRepo) setTriple(ctx context.Context, paymentID id.ID, values map[string]any) error {
	q := r.Builder().
		Update(paymentTable).
		SetMap(values).
		Where(r.tenantScope(ctx)).
		Where(squirrel.Eq{"id": paymentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build payment update: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(paymentTable, paymentID.String())
	}

	return nil
}

var _ payment.Repository = (*PaymentRepo)(nil)
