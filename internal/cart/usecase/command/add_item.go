package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// EventPublisher is the notification boundary for cart events. A nil
// publisher disables events; a publish failure never fails the command.
type EventPublisher interface {
	PublishCartItemAdded(ctx context.Context, event kafka.CartItemAddedEvent) error
}

// AddItemCommand represents the command to add a product to the session cart.
// The full product is carried so its price can be frozen at add time.
type AddItemCommand struct {
	SessionID string
	Product   catalog.Product
}

// AddItemHandler handles add-to-cart commands
type AddItemHandler struct {
	repo   domain.CartRepository
	events EventPublisher
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(repo domain.CartRepository, events EventPublisher) *AddItemHandler {
	return &AddItemHandler{repo: repo, events: events}
}

// Handle executes the add item command and returns the resulting line
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.LineItem, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.Product.ID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	snapshot := domain.LineItem{
		ProductID: cmd.Product.ID,
		Title:     cmd.Product.Title,
		Price:     cmd.Product.Price,
		Image:     cmd.Product.Image,
	}
	line := h.repo.AddItem(cmd.SessionID, snapshot)

	if h.events != nil {
		event := kafka.CartItemAddedEvent{
			SessionID: cmd.SessionID,
			ProductID: line.ProductID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
		if err := h.events.PublishCartItemAdded(ctx, event); err != nil {
			logger.Warn(ctx).Err(err).Int("product_id", line.ProductID).Msg("Failed to publish cart event")
		}
	}

	return &line, nil
}
