package catalog_repo

import (
	"tradebooks/internal/domain/catalogs/supplier"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo() *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			[]string{"name", "code", "phone"},
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

var _ supplier.Repository = (*SupplierRepo)(nil)
