package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

// FakeStoreClient reads the catalog from a fakestore-compatible REST API
type FakeStoreClient struct {
	baseURL string
	client  *http.Client
}

// NewFakeStoreClient creates a catalog client against the given base URL
func NewFakeStoreClient(baseURL string) *FakeStoreClient {
	return &FakeStoreClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// compile-time assertion that FakeStoreClient implements domain.CatalogSource
var _ domain.CatalogSource = (*FakeStoreClient)(nil)

// Products fetches the full product list
func (c *FakeStoreClient) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// Product fetches a single product by ID
func (c *FakeStoreClient) Product(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	// The upstream API answers 200 with an empty body for unknown IDs
	if product.ID == 0 {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return &product, nil
}

// Categories fetches the category labels
func (c *FakeStoreClient) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (c *FakeStoreClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn(ctx).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Catalog API returned non-OK status")
		return fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
