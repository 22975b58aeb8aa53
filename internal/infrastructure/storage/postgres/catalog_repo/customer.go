package catalog_repo

import (
	"tradebooks/internal/domain/catalogs/customer"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			[]string{"name", "code", "phone"},
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

var _ customer.Repository = (*CustomerRepo)(nil)
