//go:build wireinject
// +build wireinject

package review

import (
	"github.com/google/wire"

	httpDelivery "github.com/tair/storefront/internal/review/delivery/http"
	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/internal/review/repository"
	"github.com/tair/storefront/internal/review/usecase/command"
	"github.com/tair/storefront/internal/review/usecase/query"
)

// ProvideReviewRepository provides the seeded in-memory review log
func ProvideReviewRepository() domain.ReviewRepository {
	return repository.NewInMemoryReviewLog(repository.SeedReviews())
}

func ProvideSubmitReviewHandler(repo domain.ReviewRepository, events command.EventPublisher) *command.SubmitReviewHandler {
	return command.NewSubmitReviewHandler(repo, events)
}

func ProvideListReviewsHandler(repo domain.ReviewRepository) *query.ListReviewsHandler {
	return query.NewListReviewsHandler(repo)
}

// Wire sets
var AllHandlersSet = wire.NewSet(
	ProvideReviewRepository,
	ProvideSubmitReviewHandler,
	ProvideListReviewsHandler,
)

// InitializeHTTPHandler initializes the review HTTP handler with all dependencies
func InitializeHTTPHandler(events command.EventPublisher) (*httpDelivery.ReviewHandler, error) {
	wire.Build(
		AllHandlersSet,
		httpDelivery.NewReviewHandlerWithDI,
	)
	return nil, nil
}
