package domain

import (
	"errors"
	"time"
)

// Validation rejections for review submission. They leave the log untouched
// and are surfaced to the user.
var (
	ErrEmptyComment  = errors.New("review comment cannot be empty")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Review is one entry in a product's append-only review log. IDs are
// sequential within a single product's log only; no consumer ever merges
// logs across products, so no global counter exists.
type Review struct {
	ID      int       `json:"id"`
	Author  string    `json:"author"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

// ReviewRepository is the per-product append-only review log. No edit, no
// delete, no reordering.
type ReviewRepository interface {
	// Append adds the review to the product's log, assigning the next
	// per-product sequential ID, and returns the stored review.
	Append(productID int, review Review) Review
	// ListByProduct returns the product's reviews in append order
	ListByProduct(productID int) []Review
}
