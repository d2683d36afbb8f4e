package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

// ListCategoriesQuery represents the query to list all category labels
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	source domain.CatalogSource
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(source domain.CatalogSource) *ListCategoriesHandler {
	return &ListCategoriesHandler{source: source}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(ctx context.Context, _ ListCategoriesQuery) ([]string, error) {
	categories, err := h.source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
