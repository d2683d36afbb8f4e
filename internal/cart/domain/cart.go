package domain

import "errors"

// ErrInvalidQuantity rejects quantity edits that are not positive integers.
// The line keeps its previous quantity; removal has its own operation.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// LineItem is one cart line: a product snapshot frozen at add time plus a
// quantity. Later catalog price changes never touch an existing line.
type LineItem struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is the line's displayed price: snapshot price times quantity
func (l LineItem) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart aggregates a session's line items in first-add order. At most one
// line exists per product id; quantity is always >= 1.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []LineItem `json:"lines"`
}

// AddItem merges the snapshot into the cart: an existing line for the same
// product gains one unit, otherwise a new line starts at quantity 1. The
// snapshot's own Quantity field is ignored.
func (c *Cart) AddItem(snapshot LineItem) LineItem {
	for i := range c.Lines {
		if c.Lines[i].ProductID == snapshot.ProductID {
			c.Lines[i].Quantity++
			return c.Lines[i]
		}
	}
	snapshot.Quantity = 1
	c.Lines = append(c.Lines, snapshot)
	return snapshot
}

// UpdateQuantity replaces a line's quantity. Non-positive quantities are
// rejected with ErrInvalidQuantity; a missing line is a silent no-op.
func (c *Cart) UpdateQuantity(productID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

// RemoveItem deletes the line for the product if present
func (c *Cart) RemoveItem(productID int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// TotalPrice sums the line subtotals
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// LineCount reports the number of distinct lines
func (c *Cart) LineCount() int {
	return len(c.Lines)
}

// CartRepository is the session-scoped cart store. One cart exists per
// session for the life of the process; nothing else mutates it.
type CartRepository interface {
	// Get returns a copy of the session's cart; a session with no cart yet
	// yields an empty one.
	Get(sessionID string) Cart
	// AddItem applies the add-to-cart transition and returns the resulting line
	AddItem(sessionID string, snapshot LineItem) LineItem
	// UpdateQuantity applies a quantity edit; see Cart.UpdateQuantity
	UpdateQuantity(sessionID string, productID, quantity int) error
	// RemoveItem deletes a line; missing lines are a no-op
	RemoveItem(sessionID string, productID int)
	// SessionCount reports how many sessions currently hold a cart
	SessionCount() int
}
