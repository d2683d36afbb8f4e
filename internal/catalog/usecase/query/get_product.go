package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID int
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	source domain.CatalogSource
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(source domain.CatalogSource) *GetProductHandler {
	return &GetProductHandler{source: source}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	if q.ID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	product, err := h.source.Product(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	return product, nil
}
