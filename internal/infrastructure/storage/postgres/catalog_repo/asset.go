package catalog_repo

import (
	"tradebooks/internal/domain/catalogs/asset"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const assetTable = "cat_assets"

// AssetRepo implements asset.Repository.
type AssetRepo struct {
	*BaseCatalogRepo[*asset.Asset]
}

// NewAssetRepo creates a new asset repository.
func NewAssetRepo() *AssetRepo {
	return &AssetRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			assetTable,
			postgres.ExtractDBColumns[asset.Asset](),
			[]string{"name", "code"},
			func() *asset.Asset { return &asset.Asset{} },
		),
	}
}

var _ asset.Repository = (*AssetRepo)(nil)
