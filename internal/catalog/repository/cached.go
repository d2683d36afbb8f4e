package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

const (
	keyProducts   = "catalog:products"
	keyCategories = "catalog:categories"
	keyProductFmt = "catalog:product:%d"
)

// CachedSource is a Redis read-through cache in front of a CatalogSource.
// A nil client or any Redis failure degrades to a plain pass-through; the
// cache is a performance layer, never a source of errors.
type CachedSource struct {
	source domain.CatalogSource
	rdb    *redis.Client
	ttl    time.Duration
}

// NewCachedSource wraps source with a Redis cache using the given TTL
func NewCachedSource(source domain.CatalogSource, rdb *redis.Client, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSource{source: source, rdb: rdb, ttl: ttl}
}

var _ domain.CatalogSource = (*CachedSource)(nil)

// Products returns the cached product list, fetching upstream on a miss
func (c *CachedSource) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if c.lookup(ctx, keyProducts, &products) {
		return products, nil
	}

	products, err := c.source.Products(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, keyProducts, products)
	return products, nil
}

// Product returns a cached single product, fetching upstream on a miss
func (c *CachedSource) Product(ctx context.Context, id int) (*domain.Product, error) {
	key := fmt.Sprintf(keyProductFmt, id)

	var product domain.Product
	if c.lookup(ctx, key, &product) {
		return &product, nil
	}

	fetched, err := c.source.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fetched)
	return fetched, nil
}

// Categories returns the cached category list, fetching upstream on a miss
func (c *CachedSource) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if c.lookup(ctx, keyCategories, &categories) {
		return categories, nil
	}

	categories, err := c.source.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, keyCategories, categories)
	return categories, nil
}

// lookup reports a cache hit and decodes the cached payload into out
func (c *CachedSource) lookup(ctx context.Context, key string, out interface{}) bool {
	if c.rdb == nil {
		return false
	}

	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx).Err(err).Str("key", key).Msg("Cache lookup failed")
		}
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Dropping undecodable cache entry")
		c.rdb.Del(ctx, key)
		return false
	}

	logger.Debug(ctx).Str("key", key).Msg("Cache hit")
	return true
}

func (c *CachedSource) store(ctx context.Context, key string, v interface{}) {
	if c.rdb == nil {
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Failed to cache catalog response")
		return
	}

	logger.Debug(ctx).
		Str("key", key).
		Dur("ttl", c.ttl).
		Int("size", len(payload)).
		Msg("Catalog response cached")
}
