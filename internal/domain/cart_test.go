package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem_MergesQuantities(t *testing.T) {
	cart := NewCart("user-1")

	require.True(t, cart.AddItem("book-1", 2))
	require.True(t, cart.AddItem("book-1", 3))

	// Adding the same book twice yields one item with the summed quantity.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCart_AddItem_AppendsDistinctBooks(t *testing.T) {
	cart := NewCart("user-1")

	require.True(t, cart.AddItem("book-1", 1))
	require.True(t, cart.AddItem("book-2", 4))

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "book-1", cart.Items[0].BookID)
	assert.Equal(t, "book-2", cart.Items[1].BookID)
}

func TestCart_AddItem_RejectsBeyondCap(t *testing.T) {
	cart := NewCart("user-1")

	require.True(t, cart.AddItem("book-1", MaxItemQuantity))
	assert.False(t, cart.AddItem("book-1", 1))
	assert.Equal(t, MaxItemQuantity, cart.Items[0].Quantity)

	assert.False(t, cart.AddItem("book-2", MaxItemQuantity+1))
	assert.Len(t, cart.Items, 1)
}

func TestCart_SetQuantity(t *testing.T) {
	cart := NewCart("user-1")
	require.True(t, cart.AddItem("book-1", 2))

	assert.True(t, cart.SetQuantity("book-1", 7))
	assert.Equal(t, 7, cart.Items[0].Quantity)

	assert.False(t, cart.SetQuantity("book-missing", 1))
}

func TestCart_RemoveItem_Idempotent(t *testing.T) {
	cart := NewCart("user-1")
	require.True(t, cart.AddItem("book-1", 2))
	require.True(t, cart.AddItem("book-2", 1))

	cart.RemoveItem("book-1")
	require.Len(t, cart.Items, 1)

	// Removing a book not in the cart leaves the item list unchanged.
	cart.RemoveItem("book-1")
	cart.RemoveItem("book-never-added")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "book-2", cart.Items[0].BookID)
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart("user-1")
	require.True(t, cart.AddItem("book-1", 2))
	cart.TotalPrice = 200

	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)
}

func TestCart_Recompute_LivePrices(t *testing.T) {
	cart := NewCart("user-1")
	require.True(t, cart.AddItem("book-1", 2))
	require.True(t, cart.AddItem("book-2", 1))

	prices := map[string]float64{"book-1": 100, "book-2": 50}
	priceOf := func(id string) (float64, bool) {
		p, ok := prices[id]
		return p, ok
	}

	cart.Recompute(priceOf)
	assert.InDelta(t, 250, cart.TotalPrice, 1e-9)

	// A price change retroactively affects the open cart.
	prices["book-1"] = 150
	cart.Recompute(priceOf)
	assert.InDelta(t, 350, cart.TotalPrice, 1e-9)
}

func TestCart_Recompute_SkipsDanglingReferences(t *testing.T) {
	cart := NewCart("user-1")
	require.True(t, cart.AddItem("book-gone", 3))
	require.True(t, cart.AddItem("book-1", 1))

	priceOf := func(id string) (float64, bool) {
		if id == "book-1" {
			return 40, true
		}
		return 0, false
	}

	cart.Recompute(priceOf)
	assert.InDelta(t, 40, cart.TotalPrice, 1e-9)
}
