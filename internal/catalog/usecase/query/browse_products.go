package query

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tair/storefront/internal/catalog/domain"
)

// BrowseProductsQuery represents the query for one page of the storefront
// listing. SessionID scopes the page-reset rule: when a session changes its
// filters or sort, the requested page number is overridden back to 1.
type BrowseProductsQuery struct {
	SessionID string
	Filters   domain.FilterSpec
	Sort      domain.SortOption
	Page      domain.Page
}

// BrowseResult is the derived visible page
type BrowseResult struct {
	Products   []domain.Product `json:"products"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	Total      int              `json:"total"`
}

// BrowseProductsHandler derives the visible, ordered, paginated product list.
// Filtering and sorting are memoized on (catalog fingerprint, filters, sort)
// so page flips never redo the O(n log n) work.
type BrowseProductsHandler struct {
	source domain.CatalogSource

	mu       sync.Mutex
	collator *collate.Collator
	memoKey  string
	memo     []domain.Product
	lastKey  map[string]string // session id -> last (filters, sort) key
}

// NewBrowseProductsHandler creates a new browse products handler
func NewBrowseProductsHandler(source domain.CatalogSource) *BrowseProductsHandler {
	return &BrowseProductsHandler{
		source:   source,
		collator: collate.New(language.English, collate.IgnoreCase),
		lastKey:  make(map[string]string),
	}
}

// Handle executes the browse query: fetch catalog, filter, stable-sort,
// paginate, in that fixed order.
func (h *BrowseProductsHandler) Handle(ctx context.Context, q BrowseProductsQuery) (*BrowseResult, error) {
	catalog, err := h.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	page := q.Page.Normalize()
	queryKey := querySignature(q.Filters, q.Sort)

	h.mu.Lock()
	defer h.mu.Unlock()

	// Changing what is visible under an old page number would be wrong, so
	// a filter or sort change forces the session back to page 1.
	if q.SessionID != "" {
		if prev, ok := h.lastKey[q.SessionID]; ok && prev != queryKey {
			page.Number = 1
		}
		h.lastKey[q.SessionID] = queryKey
	}

	memoKey := fmt.Sprintf("%x|%s", catalogFingerprint(catalog), queryKey)
	if memoKey != h.memoKey {
		h.memo = h.filterAndSort(catalog, q.Filters, q.Sort)
		h.memoKey = memoKey
	}

	visible, totalPages := paginate(h.memo, page)
	return &BrowseResult{
		Products:   visible,
		TotalPages: totalPages,
		Page:       page.Number,
		Total:      len(h.memo),
	}, nil
}

// filterAndSort applies the filter predicate and then a stable sort; ties
// keep their original catalog order.
func (h *BrowseProductsHandler) filterAndSort(catalog []domain.Product, filters domain.FilterSpec, sortBy domain.SortOption) []domain.Product {
	out := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if filters.Matches(p) {
			out = append(out, p)
		}
	}

	switch sortBy {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case domain.SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return h.collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	case domain.SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return h.collator.CompareString(out[i].Title, out[j].Title) > 0
		})
	default:
		// Popularity, and the fallback for anything unrecognized
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating.Count > out[j].Rating.Count
		})
	}

	return out
}

// paginate slices one page out of the filtered, sorted list. Pages past the
// end yield an empty slice, not an error.
func paginate(products []domain.Product, page domain.Page) ([]domain.Product, int) {
	if len(products) == 0 {
		return []domain.Product{}, 0
	}

	totalPages := (len(products) + page.Size - 1) / page.Size

	start := (page.Number - 1) * page.Size
	if start >= len(products) {
		return []domain.Product{}, totalPages
	}
	end := start + page.Size
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], totalPages
}

// querySignature canonicalizes a (filters, sort) pair into a cache key
func querySignature(filters domain.FilterSpec, sortBy domain.SortOption) string {
	min, max := "", ""
	if filters.MinPrice != nil {
		min = fmt.Sprintf("%g", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		max = fmt.Sprintf("%g", *filters.MaxPrice)
	}
	return fmt.Sprintf("cat=%s&min=%s&max=%s&sort=%s", filters.Category, min, max, sortBy)
}

// catalogFingerprint hashes the fields the pipeline depends on, so a catalog
// refresh invalidates the memo without a deep comparison.
func catalogFingerprint(catalog []domain.Product) uint64 {
	hash := fnv.New64a()
	for _, p := range catalog {
		fmt.Fprintf(hash, "%d|%s|%s|%g|%d|", p.ID, p.Title, p.Category, p.Price, p.Rating.Count)
	}
	return hash.Sum64()
}
