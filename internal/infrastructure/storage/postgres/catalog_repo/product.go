package catalog_repo

import (
	"tradebooks/internal/domain/catalogs/product"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			[]string{"name", "code"},
			func() *product.Product { return &product.Product{} },
		),
	}
}

var _ product.Repository = (*ProductRepo)(nil)
