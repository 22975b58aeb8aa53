// Package sequence_repo implements the last-issued-code lookup behind the
// sequence generator. Each document type maps to the table its codes live
// in; the next code is derived from the lexicographic maximum, which is
// also the numeric maximum because the padding keeps codes equal-width.
package sequence_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/infrastructure/storage/postgres"
)

// tableSpec locates the code column of one document type. hasBranchColumn
// marks tables that carry branch_id; the rest fall back to matching the
// 3-digit branch segment inside the code itself.
type tableSpec struct {
	table           string
	column          string
	hasBranchColumn bool
}

var specs = map[string]tableSpec{
	// catalogs (keyed by the service's entity name)
	"company":      {table: "cat_companies", column: "code"},
	"branch":       {table: "cat_branches", column: "code"},
	"unit":         {table: "cat_units", column: "code"},
	"product":      {table: "cat_products", column: "code"},
	"supplier":     {table: "cat_suppliers", column: "code"},
	"customer":     {table: "cat_customers", column: "code"},
	"employee":     {table: "cat_employees", column: "code", hasBranchColumn: true},
	"asset":        {table: "cat_assets", column: "code", hasBranchColumn: true},
	"bank account": {table: "cat_bank_accounts", column: "code"},

	// documents
	"purchase":        {table: "doc_purchases", column: "number", hasBranchColumn: true},
	"productreceive":  {table: "doc_product_receives", column: "number", hasBranchColumn: true},
	"sales":           {table: "doc_sales", column: "number", hasBranchColumn: true},
	"salereturn":      {table: "doc_sale_returns", column: "number", hasBranchColumn: true},
	"damage":          {table: "doc_damages", column: "number", hasBranchColumn: true},
	"booking":         {table: "doc_bookings", column: "number", hasBranchColumn: true},
	"productdelivery": {table: "doc_product_deliveries", column: "number", hasBranchColumn: true},
	"banktransaction": {table: "doc_bank_transactions", column: "number", hasBranchColumn: true},
	"payment":         {table: "doc_payments", column: "number", hasBranchColumn: true},
}

// Source implements sequence.LastCodeSource against the document tables.
type Source struct{}

// NewSource creates a new last-code source.
func NewSource() *Source {
	return &Source{}
}

func (s *Source) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

func (s *Source) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// LastCode returns the last issued code for docType in scope, or ok=false
// when the scope has no rows yet.
func (s *Source) LastCode(ctx context.Context, docType string, scope sequence.Scope) (string, bool, error) {
	spec, ok := specs[docType]
	if !ok {
		return "", false, apperror.NewInternal(fmt.Errorf("unknown document type %q", docType))
	}

	q := s.builder().
		Select(spec.column).
		From(spec.table).
		Where(squirrel.Eq{"tenant_id": tenant.MustGetTenantID(ctx)})

	if scope.IsBranchScoped() {
		if spec.hasBranchColumn {
			q = q.Where(squirrel.Eq{"branch_id": *scope.BranchID})
		} else {
			q = q.Where(squirrel.Like{spec.column: fmt.Sprintf("%%-%03d-%%", scope.BranchNumber)})
		}
	}

	q = q.OrderBy(spec.column + " DESC").Limit(1)

	return s.scanOne(ctx, q)
}

// LastInvoiceNumber returns the last issued invoice number for the calendar
// month of period, or ok=false when that month has none.
func (s *Source) LastInvoiceNumber(ctx context.Context, docType string, scope sequence.Scope, period time.Time) (string, bool, error) {
	spec, ok := specs[docType]
	if !ok {
		return "", false, apperror.NewInternal(fmt.Errorf("unknown document type %q", docType))
	}

	q := s.builder().
		Select(spec.column).
		From(spec.table).
		Where(squirrel.Eq{"tenant_id": tenant.MustGetTenantID(ctx)}).
		Where(squirrel.Like{spec.column: period.Format("0601") + "%"})

	if scope.IsBranchScoped() && spec.hasBranchColumn {
		q = q.Where(squirrel.Eq{"branch_id": *scope.BranchID})
	}

	q = q.OrderBy(spec.column + " DESC").Limit(1)

	return s.scanOne(ctx, q)
}

func (s *Source) scanOne(ctx context.Context, q squirrel.SelectBuilder) (string, bool, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build last code query: %w", err)
	}

	var code string
	err = s.getTxManager(ctx).GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("last code: %w", err)
	}

	return code, true, nil
}

var _ sequence.LastCodeSource = (*Source)(nil)
