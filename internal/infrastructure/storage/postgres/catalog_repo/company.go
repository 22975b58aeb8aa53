package catalog_repo

import (
	"context"

	"tradebooks/internal/domain/catalogs/company"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const companyTable = "cat_companies"

// CompanyRepo implements company.Repository.
type CompanyRepo struct {
	*BaseCatalogRepo[*company.Company]
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			companyTable,
			postgres.ExtractDBColumns[company.Company](),
			[]string{"name", "code"},
			func() *company.Company { return &company.Company{} },
		),
	}
}

// GetCurrent retrieves the tenant's company row. Tenants carry exactly one
// company; the tenant scope on the base select narrows it down.
func (r *CompanyRepo) GetCurrent(ctx context.Context) (*company.Company, error) {
	q := r.baseSelect(ctx).
		OrderBy("created_at ASC").
		Limit(1)
	return r.FindOne(ctx, q)
}

var _ company.Repository = (*CompanyRepo)(nil)
