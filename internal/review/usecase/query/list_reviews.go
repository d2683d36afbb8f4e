package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/review/domain"
)

// ListReviewsQuery represents the query for a product's review log
type ListReviewsQuery struct {
	ProductID int
}

// ListReviewsHandler handles list reviews queries
type ListReviewsHandler struct {
	repo domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(repo domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{repo: repo}
}

// Handle returns the product's reviews in append order
func (h *ListReviewsHandler) Handle(_ context.Context, q ListReviewsQuery) ([]domain.Review, error) {
	if q.ProductID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	return h.repo.ListByProduct(q.ProductID), nil
}
