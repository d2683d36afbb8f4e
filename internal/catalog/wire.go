//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"

	httpDelivery "github.com/tair/storefront/internal/catalog/delivery/http"
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/query"
)

// ProvideBrowseProductsHandler provides the browse query handler
func ProvideBrowseProductsHandler(source domain.CatalogSource) *query.BrowseProductsHandler {
	return query.NewBrowseProductsHandler(source)
}

// ProvideGetProductHandler provides the get product query handler
func ProvideGetProductHandler(source domain.CatalogSource) *query.GetProductHandler {
	return query.NewGetProductHandler(source)
}

// ProvideListCategoriesHandler provides the list categories query handler
func ProvideListCategoriesHandler(source domain.CatalogSource) *query.ListCategoriesHandler {
	return query.NewListCategoriesHandler(source)
}

// Wire sets
var QueryHandlerSet = wire.NewSet(
	ProvideBrowseProductsHandler,
	ProvideGetProductHandler,
	ProvideListCategoriesHandler,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(source domain.CatalogSource) (*httpDelivery.CatalogHandler, error) {
	wire.Build(
		QueryHandlerSet,
		httpDelivery.NewCatalogHandlerWithDI,
	)
	return nil, nil
}
