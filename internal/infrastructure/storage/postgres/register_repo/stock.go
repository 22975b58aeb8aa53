// Package register_repo provides PostgreSQL implementations for register
// repositories. Register rows are keyed by business dimensions rather than
// a business code, and are only ever written from inside a document
// transaction.
package register_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain/registers/stock"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const stockTable = "reg_stock"

// StockRepo implements stock.Repository against a single running-balance
// table keyed by (tenant_id, branch_id, product_id).
type StockRepo struct{}

// NewStockRepo creates a new stock register repository.
func NewStockRepo() *StockRepo {
	return &StockRepo{}
}

func (r *StockRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *StockRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ApplyDelta upserts the (branch, product) row, adding delta to the running
// quantity. A non-nil rate refreshes last_purchase_rate; a nil rate leaves
// the stored rate untouched.
func (r *StockRepo) ApplyDelta(ctx context.Context, branchID, productID id.ID, delta types.Quantity, rate *types.Amount) error {
	now := time.Now().UTC()

	insertRate := types.Zero
	rateUpdate := stockTable + ".last_purchase_rate"
	if rate != nil {
		insertRate = *rate
		rateUpdate = "EXCLUDED.last_purchase_rate"
	}

	q := r.Builder().
		Insert(stockTable).
		Columns("id", "tenant_id", "branch_id", "product_id", "quantity", "last_purchase_rate", "updated_at").
		Values(id.New(), tenant.MustGetTenantID(ctx), branchID, productID, delta, insertRate, now).
		Suffix("ON CONFLICT (tenant_id, branch_id, product_id) DO UPDATE SET " +
			"quantity = " + stockTable + ".quantity + EXCLUDED.quantity, " +
			"last_purchase_rate = " + rateUpdate + ", " +
			"updated_at = EXCLUDED.updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build stock upsert: %w", err)
	}

	if _, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}

	return nil
}

// GetQuantity returns the current running quantity; zero when no row exists.
func (r *StockRepo) GetQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	q := r.Builder().
		Select("quantity").
		From(stockTable).
		Where(squirrel.Eq{
			"tenant_id":  tenant.MustGetTenantID(ctx),
			"branch_id":  branchID,
			"product_id": productID,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero, fmt.Errorf("build stock query: %w", err)
	}

	var quantity types.Quantity
	err = r.getTxManager(ctx).GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Zero, nil
	}
	if err != nil {
		return types.Zero, fmt.Errorf("get stock quantity: %w", err)
	}

	return quantity, nil
}

// GetStock returns the full row for reporting.
func (r *StockRepo) GetStock(ctx context.Context, branchID, productID id.ID) (*stock.Stock, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[stock.Stock]()...).
		From(stockTable).
		Where(squirrel.Eq{
			"tenant_id":  tenant.MustGetTenantID(ctx),
			"branch_id":  branchID,
			"product_id": productID,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stock query: %w", err)
	}

	row := &stock.Stock{}
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(stockTable, productID.String())
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}

	return row, nil
}

// ListByBranch returns all non-zero rows for a branch.
func (r *StockRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*stock.Stock, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[stock.Stock]()...).
		From(stockTable).
		Where(squirrel.Eq{
			"tenant_id": tenant.MustGetTenantID(ctx),
			"branch_id": branchID,
		}).
		Where(squirrel.NotEq{"quantity": 0}).
		OrderBy("updated_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stock list: %w", err)
	}

	var rows []*stock.Stock
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}

	return rows, nil
}

// deliverableSQL sums receipts minus prior deliveries in base units, using
// the largest conversion factor on record for each line's unit (the same
// resolution rule the conversion lookup applies).
const deliverableSQL = `
SELECT COALESCE((
    SELECT SUM(l.quantity * COALESCE((
        SELECT c.conversion_value FROM cat_unit_conversions c
         WHERE c.tenant_id = $1 AND c.unit_id = l.unit_id
         ORDER BY c.conversion_value DESC LIMIT 1), 1))
      FROM doc_product_receive_lines l
      JOIN doc_product_receives d ON d.id = l.document_id AND d.tenant_id = l.tenant_id
     WHERE l.tenant_id = $1 AND d.branch_id = $2 AND l.product_id = $3), 0)
 -
 COALESCE((
    SELECT SUM(l.quantity * COALESCE((
        SELECT c.conversion_value FROM cat_unit_conversions c
         WHERE c.tenant_id = $1 AND c.unit_id = l.unit_id
         ORDER BY c.conversion_value DESC LIMIT 1), 1))
      FROM doc_product_delivery_lines l
      JOIN doc_product_deliveries d ON d.id = l.document_id AND d.tenant_id = l.tenant_id
     WHERE l.tenant_id = $1 AND d.branch_id = $2 AND l.product_id = $3), 0)
`

// DeliverableQuantity computes how much of a product remains deliverable at
// a branch: everything received minus everything already delivered. Sales,
// purchases and damage do not enter this figure.
func (r *StockRepo) DeliverableQuantity(ctx context.Context, branchID, productID id.ID) (types.Quantity, error) {
	tenantID := tenant.MustGetTenantID(ctx)

	var deliverable types.Quantity
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	err := querier.QueryRow(ctx, deliverableSQL, tenantID, branchID, productID).Scan(&deliverable)
	if err != nil {
		return types.Zero, fmt.Errorf("deliverable quantity: %w", err)
	}

	return deliverable, nil
}

var _ stock.Repository = (*StockRepo)(nil)
