package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
)

// UpdateQuantityCommand represents the command to set a line's quantity
type UpdateQuantityCommand struct {
	SessionID string
	ProductID int
	Quantity  int
}

// UpdateQuantityHandler handles quantity edit commands
type UpdateQuantityHandler struct {
	repo domain.CartRepository
}

// NewUpdateQuantityHandler creates a new update quantity handler
func NewUpdateQuantityHandler(repo domain.CartRepository) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{repo: repo}
}

// Handle executes the quantity edit. Non-positive quantities surface
// domain.ErrInvalidQuantity; editing a line that does not exist is a no-op.
func (h *UpdateQuantityHandler) Handle(_ context.Context, cmd UpdateQuantityCommand) error {
	if cmd.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return h.repo.UpdateQuantity(cmd.SessionID, cmd.ProductID, cmd.Quantity)
}
