package domain

import (
	"context"
	"strconv"
)

// Product is an immutable snapshot of a catalog item exactly as served by
// the upstream catalog API. The storefront never mutates it.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      Rating  `json:"rating"`
}

// Rating carries the upstream aggregate rating for a product
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// FilterSpec narrows the visible catalog. Nil/empty fields mean no
// constraint; min > max simply yields an empty result, never an error.
type FilterSpec struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Matches reports whether the product satisfies every present constraint
func (f FilterSpec) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// IsZero reports whether no constraint is set
func (f FilterSpec) IsZero() bool {
	return f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// ParsePriceBound converts free-form price input into an optional bound.
// Non-numeric or negative input counts as absent, not as zero.
func ParsePriceBound(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// SortOption selects the ordering of the visible catalog
type SortOption string

const (
	SortPopularity SortOption = "popularity"
	SortPriceAsc   SortOption = "priceAsc"
	SortPriceDesc  SortOption = "priceDesc"
	SortNameAsc    SortOption = "nameAsc"
	SortNameDesc   SortOption = "nameDesc"
)

// ParseSortOption maps free-form input onto a known option. Anything
// unrecognized falls back to popularity, the default.
func ParseSortOption(s string) SortOption {
	switch SortOption(s) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortPopularity:
		return SortOption(s)
	default:
		return SortPopularity
	}
}

// DefaultPageSize is the number of products shown per page
const DefaultPageSize = 10

// Page addresses one slice of the filtered, sorted catalog
type Page struct {
	Number int
	Size   int
}

// Normalize clamps degenerate page parameters to usable defaults
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// CatalogSource supplies the product catalog. Implementations fetch from the
// upstream catalog API, possibly through a cache; the storefront only ever
// reads from it.
type CatalogSource interface {
	Products(ctx context.Context) ([]Product, error)
	Product(ctx context.Context, id int) (*Product, error)
	Categories(ctx context.Context) ([]string, error)
}
