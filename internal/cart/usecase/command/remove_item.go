package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
)

// RemoveItemCommand represents the command to delete a line from the cart
type RemoveItemCommand struct {
	SessionID string
	ProductID int
}

// RemoveItemHandler handles remove-from-cart commands
type RemoveItemHandler struct {
	repo domain.CartRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(repo domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{repo: repo}
}

// Handle executes the removal; a missing line is a silent no-op
func (h *RemoveItemHandler) Handle(_ context.Context, cmd RemoveItemCommand) error {
	if cmd.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	h.repo.RemoveItem(cmd.SessionID, cmd.ProductID)
	return nil
}
