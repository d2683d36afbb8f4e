package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
)

// GetCartQuery represents the query for a session's cart view
type GetCartQuery struct {
	SessionID string
}

// LineView is one rendered cart line with its derived subtotal
type LineView struct {
	domain.LineItem
	Subtotal float64 `json:"subtotal"`
}

// CartView is the rendered cart: lines in first-add order plus aggregates
type CartView struct {
	Lines      []LineView `json:"lines"`
	TotalPrice float64    `json:"total_price"`
	LineCount  int        `json:"line_count"`
}

// GetCartHandler handles get cart queries
type GetCartHandler struct {
	repo domain.CartRepository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(repo domain.CartRepository) *GetCartHandler {
	return &GetCartHandler{repo: repo}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(_ context.Context, q GetCartQuery) (*CartView, error) {
	if q.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	cart := h.repo.Get(q.SessionID)

	view := &CartView{
		Lines:      make([]LineView, 0, len(cart.Lines)),
		TotalPrice: cart.TotalPrice(),
		LineCount:  cart.LineCount(),
	}
	for _, line := range cart.Lines {
		view.Lines = append(view.Lines, LineView{
			LineItem: line,
			Subtotal: line.Subtotal(),
		})
	}
	return view, nil
}
