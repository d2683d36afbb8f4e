package repository

import (
	"sync"

	"github.com/tair/storefront/internal/review/domain"
)

// InMemoryReviewLog is a thread-safe, per-product append-only review store
type InMemoryReviewLog struct {
	mu      sync.RWMutex
	reviews map[int][]domain.Review
}

// NewInMemoryReviewLog constructs a review log, optionally pre-seeded with
// canned reviews keyed by product ID
func NewInMemoryReviewLog(seed map[int][]domain.Review) *InMemoryReviewLog {
	reviews := make(map[int][]domain.Review, len(seed))
	for productID, list := range seed {
		reviews[productID] = append([]domain.Review(nil), list...)
	}
	return &InMemoryReviewLog{reviews: reviews}
}

// compile-time assertion that InMemoryReviewLog implements domain.ReviewRepository
var _ domain.ReviewRepository = (*InMemoryReviewLog)(nil)

// Append stores the review with the next sequential ID for the product
func (s *InMemoryReviewLog) Append(productID int, review domain.Review) domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	review.ID = len(s.reviews[productID]) + 1
	s.reviews[productID] = append(s.reviews[productID], review)
	return review
}

// ListByProduct returns a copy of the product's reviews in append order
func (s *InMemoryReviewLog) ListByProduct(productID int) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Review(nil), s.reviews[productID]...)
}
