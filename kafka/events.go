package kafka

import "time"

// CartItemAddedEvent is emitted whenever a product is added to a cart.
// The notification side consumes it to surface user feedback.
type CartItemAddedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SessionID string    `json:"session_id"`
	ProductID int       `json:"product_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// ReviewSubmittedEvent is emitted after a review passes validation and is
// appended to a product's review log.
type ReviewSubmittedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID int       `json:"product_id"`
	ReviewID  int       `json:"review_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeCartItemAdded   = "cart.item_added"
	EventTypeReviewSubmitted = "review.submitted"
)

// Kafka topics
const (
	TopicCartItemAdded   = "cart-item-added"
	TopicReviewSubmitted = "review-submitted"
)
