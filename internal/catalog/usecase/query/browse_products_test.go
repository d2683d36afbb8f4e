package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
)

type stubSource struct {
	products   []domain.Product
	categories []string
}

func (s *stubSource) Products(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubSource) Product(_ context.Context, id int) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %d not found", id)
}

func (s *stubSource) Categories(_ context.Context) ([]string, error) {
	return s.categories, nil
}

func product(id int, title string, price float64, category string, ratingCount int) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    title,
		Price:    price,
		Category: category,
		Rating:   domain.Rating{Rate: 4, Count: ratingCount},
	}
}

func priceBound(v float64) *float64 { return &v }

func newHandler(products ...domain.Product) *BrowseProductsHandler {
	return NewBrowseProductsHandler(&stubSource{products: products})
}

func ids(products []domain.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestBrowseFiltering(t *testing.T) {
	ctx := context.Background()
	catalog := []domain.Product{
		product(1, "Backpack", 10, "a", 5),
		product(2, "Monitor", 20, "b", 9),
		product(3, "Jacket", 30, "a", 2),
		product(4, "Ring", 40, "c", 7),
	}

	cases := []struct {
		name    string
		filters domain.FilterSpec
		wantIDs []int
	}{
		{"no constraints", domain.FilterSpec{}, []int{2, 4, 1, 3}}, // popularity order
		{"category", domain.FilterSpec{Category: "a"}, []int{1, 3}},
		{"min price", domain.FilterSpec{MinPrice: priceBound(25)}, []int{4, 3}},
		{"max price", domain.FilterSpec{MaxPrice: priceBound(20)}, []int{2, 1}},
		{"bounds are inclusive", domain.FilterSpec{MinPrice: priceBound(20), MaxPrice: priceBound(30)}, []int{2, 3}},
		{"category and bounds", domain.FilterSpec{Category: "a", MinPrice: priceBound(15)}, []int{3}},
		{"min above max yields empty, not error", domain.FilterSpec{MinPrice: priceBound(100), MaxPrice: priceBound(1)}, []int{}},
		{"unknown category yields empty", domain.FilterSpec{Category: "nope"}, []int{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHandler(catalog...)
			result, err := h.Handle(ctx, BrowseProductsQuery{Filters: tc.filters})
			require.NoError(t, err)
			assert.Equal(t, tc.wantIDs, ids(result.Products))
		})
	}
}

func TestBrowseSorting(t *testing.T) {
	ctx := context.Background()
	catalog := []domain.Product{
		product(1, "zebra print mug", 30, "a", 5),
		product(2, "Éclair mold", 10, "a", 8),
		product(3, "apple slicer", 20, "a", 8),
		product(4, "Teapot", 10, "a", 1),
	}

	cases := []struct {
		name    string
		sort    domain.SortOption
		wantIDs []int
	}{
		{"price ascending", domain.SortPriceAsc, []int{2, 4, 3, 1}},
		{"price descending", domain.SortPriceDesc, []int{1, 3, 2, 4}},
		// Locale-aware: É sorts with E, not after z as raw bytes would
		{"name ascending", domain.SortNameAsc, []int{3, 2, 4, 1}},
		{"name descending", domain.SortNameDesc, []int{1, 4, 2, 3}},
		{"popularity", domain.SortPopularity, []int{2, 3, 1, 4}},
		{"unknown option falls back to popularity", domain.SortOption("newest"), []int{2, 3, 1, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHandler(catalog...)
			result, err := h.Handle(ctx, BrowseProductsQuery{Sort: tc.sort})
			require.NoError(t, err)
			assert.Equal(t, tc.wantIDs, ids(result.Products))
		})
	}
}

func TestBrowseSortIsStable(t *testing.T) {
	// Equal keys keep original catalog order
	catalog := []domain.Product{
		product(10, "Cap", 15, "a", 3),
		product(11, "Hat", 15, "a", 3),
		product(12, "Visor", 15, "a", 3),
	}
	h := newHandler(catalog...)

	for _, sort := range []domain.SortOption{domain.SortPriceAsc, domain.SortPriceDesc, domain.SortPopularity} {
		result, err := h.Handle(context.Background(), BrowseProductsQuery{Sort: sort})
		require.NoError(t, err)
		assert.Equal(t, []int{10, 11, 12}, ids(result.Products), "sort %s must keep catalog order on ties", sort)
	}
}

func TestBrowsePagination(t *testing.T) {
	ctx := context.Background()
	var catalog []domain.Product
	for i := 1; i <= 23; i++ {
		catalog = append(catalog, product(i, fmt.Sprintf("Item %02d", i), float64(i), "a", i))
	}
	h := newHandler(catalog...)

	pageAt := func(n int) *BrowseResult {
		result, err := h.Handle(ctx, BrowseProductsQuery{
			Sort: domain.SortPriceAsc,
			Page: domain.Page{Number: n, Size: 10},
		})
		require.NoError(t, err)
		return result
	}

	t.Run("total pages is ceil of count over size", func(t *testing.T) {
		assert.Equal(t, 3, pageAt(1).TotalPages)
	})

	t.Run("pages partition the filtered set", func(t *testing.T) {
		var seen []int
		for n := 1; n <= 3; n++ {
			seen = append(seen, ids(pageAt(n).Products)...)
		}
		require.Len(t, seen, 23)
		assert.Equal(t, ids(pageAt(1).Products)[0], seen[0])
		for i, id := range seen {
			assert.Equal(t, i+1, id)
		}
	})

	t.Run("page beyond total is empty, not an error", func(t *testing.T) {
		result := pageAt(7)
		assert.Empty(t, result.Products)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("empty filtered set has zero pages", func(t *testing.T) {
		result, err := h.Handle(ctx, BrowseProductsQuery{
			Filters: domain.FilterSpec{Category: "nope"},
			Page:    domain.Page{Number: 1, Size: 10},
		})
		require.NoError(t, err)
		assert.Empty(t, result.Products)
		assert.Equal(t, 0, result.TotalPages)
	})
}

func TestBrowsePageResetOnFilterOrSortChange(t *testing.T) {
	ctx := context.Background()
	var catalog []domain.Product
	for i := 1; i <= 30; i++ {
		catalog = append(catalog, product(i, fmt.Sprintf("Item %02d", i), float64(i), "a", i))
	}
	h := newHandler(catalog...)

	browse := func(sort domain.SortOption, filters domain.FilterSpec, page int) *BrowseResult {
		result, err := h.Handle(ctx, BrowseProductsQuery{
			SessionID: "sess-1",
			Filters:   filters,
			Sort:      sort,
			Page:      domain.Page{Number: page, Size: 10},
		})
		require.NoError(t, err)
		return result
	}

	// Establish the session on page 2
	result := browse(domain.SortPriceAsc, domain.FilterSpec{}, 1)
	assert.Equal(t, 1, result.Page)
	result = browse(domain.SortPriceAsc, domain.FilterSpec{}, 2)
	assert.Equal(t, 2, result.Page)

	t.Run("sort change resets to page 1", func(t *testing.T) {
		result := browse(domain.SortPriceDesc, domain.FilterSpec{}, 2)
		assert.Equal(t, 1, result.Page)
	})

	t.Run("filter change resets to page 1", func(t *testing.T) {
		browse(domain.SortPriceDesc, domain.FilterSpec{}, 2)
		result := browse(domain.SortPriceDesc, domain.FilterSpec{MinPrice: priceBound(5)}, 2)
		assert.Equal(t, 1, result.Page)
	})

	t.Run("page change alone is honored", func(t *testing.T) {
		browse(domain.SortPriceAsc, domain.FilterSpec{}, 1)
		result := browse(domain.SortPriceAsc, domain.FilterSpec{}, 3)
		assert.Equal(t, 3, result.Page)
	})

	t.Run("sessions do not interfere", func(t *testing.T) {
		browse(domain.SortPriceAsc, domain.FilterSpec{}, 2)
		other, err := h.Handle(ctx, BrowseProductsQuery{
			SessionID: "sess-2",
			Sort:      domain.SortPriceDesc,
			Page:      domain.Page{Number: 2, Size: 10},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, other.Page)

		result := browse(domain.SortPriceAsc, domain.FilterSpec{}, 2)
		assert.Equal(t, 2, result.Page)
	})
}

func TestBrowseSeesCatalogRefresh(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{products: []domain.Product{
		product(1, "Old", 10, "a", 5),
	}}
	h := NewBrowseProductsHandler(source)

	result, err := h.Handle(ctx, BrowseProductsQuery{})
	require.NoError(t, err)
	require.Equal(t, []int{1}, ids(result.Products))

	// A refreshed catalog must invalidate the memoized derivation
	source.products = []domain.Product{
		product(1, "Old", 10, "a", 5),
		product(2, "New", 5, "a", 9),
	}
	result, err = h.Handle(ctx, BrowseProductsQuery{})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(result.Products))
}

func TestBrowseScenario(t *testing.T) {
	// Fixed end-to-end scenario over a two-product catalog
	ctx := context.Background()
	catalog := []domain.Product{
		product(1, "One", 10, "a", 5),
		product(2, "Two", 20, "b", 9),
	}
	h := newHandler(catalog...)

	result, err := h.Handle(ctx, BrowseProductsQuery{Filters: domain.FilterSpec{Category: "a"}})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(result.Products))

	result, err = h.Handle(ctx, BrowseProductsQuery{Sort: domain.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(result.Products))
}
