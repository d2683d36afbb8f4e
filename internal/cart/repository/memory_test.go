package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/cart/domain"
)

func snapshot(id int, title string, price float64) domain.LineItem {
	return domain.LineItem{ProductID: id, Title: title, Price: price}
}

func TestAddItemMergesOnProductID(t *testing.T) {
	s := NewInMemoryCartStore()

	line := s.AddItem("sess", snapshot(1, "Backpack", 10))
	assert.Equal(t, 1, line.Quantity)

	line = s.AddItem("sess", snapshot(1, "Backpack", 10))
	assert.Equal(t, 2, line.Quantity)

	cart := s.Get("sess")
	require.Len(t, cart.Lines, 1, "repeat add must not create a second line")
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestAddItemFreezesPriceAtAddTime(t *testing.T) {
	s := NewInMemoryCartStore()

	s.AddItem("sess", snapshot(1, "Backpack", 10))
	// A later catalog price change arrives with the repeat add; the line
	// keeps the price from the first add
	s.AddItem("sess", snapshot(1, "Backpack", 99))

	cart := s.Get("sess")
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 10.0, cart.Lines[0].Price)
	assert.Equal(t, 20.0, cart.TotalPrice())
}

func TestLinesKeepFirstAddOrder(t *testing.T) {
	s := NewInMemoryCartStore()

	s.AddItem("sess", snapshot(3, "Ring", 5))
	s.AddItem("sess", snapshot(1, "Backpack", 10))
	s.AddItem("sess", snapshot(2, "Monitor", 20))
	s.AddItem("sess", snapshot(3, "Ring", 5)) // repeat must not reorder

	cart := s.Get("sess")
	require.Len(t, cart.Lines, 3)
	assert.Equal(t, 3, cart.Lines[0].ProductID)
	assert.Equal(t, 1, cart.Lines[1].ProductID)
	assert.Equal(t, 2, cart.Lines[2].ProductID)
}

func TestUpdateQuantity(t *testing.T) {
	s := NewInMemoryCartStore()
	s.AddItem("sess", snapshot(1, "Backpack", 10))
	s.AddItem("sess", snapshot(1, "Backpack", 10))

	t.Run("valid edit replaces quantity", func(t *testing.T) {
		require.NoError(t, s.UpdateQuantity("sess", 1, 5))
		assert.Equal(t, 5, s.Get("sess").Lines[0].Quantity)
	})

	t.Run("zero is rejected and quantity is unchanged", func(t *testing.T) {
		err := s.UpdateQuantity("sess", 1, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Equal(t, 5, s.Get("sess").Lines[0].Quantity)
	})

	t.Run("negative is rejected and quantity is unchanged", func(t *testing.T) {
		err := s.UpdateQuantity("sess", 1, -3)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Equal(t, 5, s.Get("sess").Lines[0].Quantity)
	})

	t.Run("missing line is a silent no-op", func(t *testing.T) {
		require.NoError(t, s.UpdateQuantity("sess", 99, 3))
		cart := s.Get("sess")
		require.Len(t, cart.Lines, 1)
	})

	t.Run("missing cart still rejects invalid input", func(t *testing.T) {
		err := s.UpdateQuantity("other-sess", 1, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})
}

func TestRemoveItem(t *testing.T) {
	s := NewInMemoryCartStore()
	s.AddItem("sess", snapshot(1, "Backpack", 10))
	s.AddItem("sess", snapshot(2, "Monitor", 20))

	s.RemoveItem("sess", 1)
	cart := s.Get("sess")
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].ProductID)

	// Removing again, or from an unknown session, must not panic or mutate
	s.RemoveItem("sess", 1)
	s.RemoveItem("nope", 1)
	assert.Len(t, s.Get("sess").Lines, 1)
}

func TestTotalPriceEqualsSumOfSubtotals(t *testing.T) {
	s := NewInMemoryCartStore()
	s.AddItem("sess", snapshot(1, "Backpack", 10.50))
	s.AddItem("sess", snapshot(1, "Backpack", 10.50))
	s.AddItem("sess", snapshot(2, "Monitor", 99.99))
	require.NoError(t, s.UpdateQuantity("sess", 2, 3))

	cart := s.Get("sess")
	var sum float64
	for _, l := range cart.Lines {
		sum += l.Subtotal()
	}
	assert.InDelta(t, sum, cart.TotalPrice(), 1e-9)
	assert.InDelta(t, 10.50*2+99.99*3, cart.TotalPrice(), 1e-9)
}

func TestCartScenario(t *testing.T) {
	// add, add again, edit to 5: one line, quantity 5, total 50.00
	s := NewInMemoryCartStore()
	s.AddItem("sess", snapshot(1, "One", 10))
	s.AddItem("sess", snapshot(1, "One", 10))
	require.NoError(t, s.UpdateQuantity("sess", 1, 5))

	cart := s.Get("sess")
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.InDelta(t, 50.0, cart.TotalPrice(), 1e-9)
	assert.Equal(t, 1, cart.LineCount())
}

func TestGetReturnsACopy(t *testing.T) {
	s := NewInMemoryCartStore()
	s.AddItem("sess", snapshot(1, "Backpack", 10))

	cart := s.Get("sess")
	cart.Lines[0].Quantity = 100

	assert.Equal(t, 1, s.Get("sess").Lines[0].Quantity, "mutating a returned cart must not touch the store")
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewInMemoryCartStore()
	s.AddItem("a", snapshot(1, "Backpack", 10))
	s.AddItem("b", snapshot(2, "Monitor", 20))

	assert.Equal(t, 1, s.Get("a").Lines[0].ProductID)
	assert.Equal(t, 2, s.Get("b").Lines[0].ProductID)
	assert.Equal(t, 2, s.SessionCount())
	assert.Empty(t, s.Get("c").Lines)
}
