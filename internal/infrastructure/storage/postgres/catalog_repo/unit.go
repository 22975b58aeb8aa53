package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/domain/catalogs/unit"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const (
	unitTable       = "cat_units"
	conversionTable = "cat_unit_conversions"
)

// UnitRepo implements unit.Repository.
type UnitRepo struct {
	*BaseCatalogRepo[*unit.Unit]
}

// NewUnitRepo creates a new unit repository.
func NewUnitRepo() *UnitRepo {
	return &UnitRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			unitTable,
			postgres.ExtractDBColumns[unit.Unit](),
			[]string{"name", "code", "symbol"},
			func() *unit.Unit { return &unit.Unit{} },
		),
	}
}

// CreateConversion persists a conversion row.
func (r *UnitRepo) CreateConversion(ctx context.Context, c *unit.Conversion) error {
	data := postgres.StructToMap(c)

	q := r.Builder().
		Insert(conversionTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}

	return nil
}

// ListConversions returns all conversions owned by the unit.
func (r *UnitRepo) ListConversions(ctx context.Context, unitID id.ID) ([]*unit.Conversion, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[unit.Conversion]()...).
		From(conversionTable).
		Where(squirrel.Eq{"tenant_id": tenant.MustGetTenantID(ctx)}).
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("conversion_value ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*unit.Conversion
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}

	return items, nil
}

// DeleteIdentityConversion removes the unit's factor-1 self conversion and
// reports how many rows went. Zero rows means the unit is a base unit still
// referenced by derived conversions; the caller treats that as a conflict.
func (r *UnitRepo) DeleteIdentityConversion(ctx context.Context, unitID id.ID) (int64, error) {
	q := r.Builder().
		Delete(conversionTable).
		Where(squirrel.Eq{"tenant_id": tenant.MustGetTenantID(ctx)}).
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.Eq{"base_unit_id": unitID}).
		Where(squirrel.Eq{"conversion_value": 1})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete identity conversion: %w", err)
	}

	return result.RowsAffected(), nil
}

// ConversionFactor resolves the factor from a unit to base units.
func (r *UnitRepo) ConversionFactor(ctx context.Context, unitID id.ID) (*unit.Conversion, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[unit.Conversion]()...).
		From(conversionTable).
		Where(squirrel.Eq{"tenant_id": tenant.MustGetTenantID(ctx)}).
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("conversion_value DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c unit.Conversion
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("unit conversion", unitID.String())
		}
		return nil, fmt.Errorf("conversion factor: %w", err)
	}

	return &c, nil
}

var _ unit.Repository = (*UnitRepo)(nil)
