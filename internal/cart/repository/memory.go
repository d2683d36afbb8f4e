// Package repository provides the in-memory cart store. Carts are transient
// session state; there is no durability requirement, so nothing is written
// anywhere else.
package repository

import (
	"sync"

	"github.com/tair/storefront/internal/cart/domain"
)

// InMemoryCartStore is a thread-safe, session-keyed cart store
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewInMemoryCartStore constructs an empty cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		carts: make(map[string]*domain.Cart),
	}
}

// compile-time assertion that InMemoryCartStore implements domain.CartRepository
var _ domain.CartRepository = (*InMemoryCartStore)(nil)

// Get returns a copy of the session's cart, empty if the session has none
func (s *InMemoryCartStore) Get(sessionID string) domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return domain.Cart{SessionID: sessionID, Lines: []domain.LineItem{}}
	}

	copied := domain.Cart{
		SessionID: cart.SessionID,
		Lines:     make([]domain.LineItem, len(cart.Lines)),
	}
	copy(copied.Lines, cart.Lines)
	return copied
}

// AddItem applies the add-to-cart transition for the session
func (s *InMemoryCartStore) AddItem(sessionID string, snapshot domain.LineItem) domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &domain.Cart{SessionID: sessionID}
		s.carts[sessionID] = cart
	}
	return cart.AddItem(snapshot)
}

// UpdateQuantity applies a quantity edit for the session
func (s *InMemoryCartStore) UpdateQuantity(sessionID string, productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		// Still reject invalid input so the caller's validation surface is
		// the same whether or not the session has a cart yet
		if quantity < 1 {
			return domain.ErrInvalidQuantity
		}
		return nil
	}
	return cart.UpdateQuantity(productID, quantity)
}

// RemoveItem deletes a line for the session; a missing line or cart is a no-op
func (s *InMemoryCartStore) RemoveItem(sessionID string, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[sessionID]; ok {
		cart.RemoveItem(productID)
	}
}

// SessionCount reports the number of sessions holding a cart
func (s *InMemoryCartStore) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
