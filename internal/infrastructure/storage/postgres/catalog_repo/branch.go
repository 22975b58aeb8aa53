package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/domain/catalogs/branch"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const branchTable = "cat_branches"

// BranchRepo implements branch.Repository.
type BranchRepo struct {
	*BaseCatalogRepo[*branch.Branch]
}

// NewBranchRepo creates a new branch repository.
func NewBranchRepo() *BranchRepo {
	return &BranchRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			branchTable,
			postgres.ExtractDBColumns[branch.Branch](),
			[]string{"name", "code"},
			func() *branch.Branch { return &branch.Branch{} },
		),
	}
}

// NextBranchNumber returns max(branch_number)+1 for the tenant.
func (r *BranchRepo) NextBranchNumber(ctx context.Context) (int, error) {
	q := r.Builder().
		Select("COALESCE(MAX(branch_number), 0) + 1").
		From(branchTable).
		Where(r.tenantScope(ctx))

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var next int
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next branch number: %w", err)
	}

	return next, nil
}

// BranchNumber returns the ordinal of one branch.
func (r *BranchRepo) BranchNumber(ctx context.Context, branchID id.ID) (int, error) {
	q := r.Builder().
		Select("branch_number").
		From(branchTable).
		Where(r.tenantScope(ctx)).
		Where(squirrel.Eq{"id": branchID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var num int
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&num); err != nil {
		if isNoRows(err) {
			return 0, apperror.NewNotFound("branch", branchID.String())
		}
		return 0, fmt.Errorf("branch number: %w", err)
	}

	return num, nil
}

var _ branch.Repository = (*BranchRepo)(nil)
