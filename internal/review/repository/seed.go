package repository

import (
	"time"

	"github.com/tair/storefront/internal/review/domain"
)

// SeedReviews returns the canned demo reviews shipped with the storefront,
// keyed by product ID. IDs are sequential within each product's list.
func SeedReviews() map[int][]domain.Review {
	return map[int][]domain.Review{
		1: {
			{ID: 1, Author: "Alice", Rating: 5, Comment: "Absolutely love this product! Highly recommended.", Date: date(2024, 5, 10)},
			{ID: 2, Author: "Bob", Rating: 4, Comment: "Good quality, but a bit pricey.", Date: date(2024, 5, 12)},
		},
		2: {
			{ID: 1, Author: "Charlie", Rating: 3, Comment: "It's okay, nothing special.", Date: date(2024, 5, 15)},
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
