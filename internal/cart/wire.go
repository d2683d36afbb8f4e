//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"

	httpDelivery "github.com/tair/storefront/internal/cart/delivery/http"
	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/repository"
	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/cart/usecase/query"
	catalogquery "github.com/tair/storefront/internal/catalog/usecase/query"
)

// ProvideCartRepository provides the in-memory cart store
func ProvideCartRepository() domain.CartRepository {
	return repository.NewInMemoryCartStore()
}

// Command handler providers
func ProvideAddItemHandler(repo domain.CartRepository, events command.EventPublisher) *command.AddItemHandler {
	return command.NewAddItemHandler(repo, events)
}

func ProvideUpdateQuantityHandler(repo domain.CartRepository) *command.UpdateQuantityHandler {
	return command.NewUpdateQuantityHandler(repo)
}

func ProvideRemoveItemHandler(repo domain.CartRepository) *command.RemoveItemHandler {
	return command.NewRemoveItemHandler(repo)
}

// Query handler providers
func ProvideGetCartHandler(repo domain.CartRepository) *query.GetCartHandler {
	return query.NewGetCartHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCartRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddItemHandler,
	ProvideUpdateQuantityHandler,
	ProvideRemoveItemHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetCartHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the cart HTTP handler with all dependencies
func InitializeHTTPHandler(productLookup *catalogquery.GetProductHandler, events command.EventPublisher) (*httpDelivery.CartHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpDelivery.NewCartHandlerWithDI,
	)
	return nil, nil
}
