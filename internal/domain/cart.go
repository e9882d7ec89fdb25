package domain

import "time"

// MaxItemQuantity bounds the quantity of a single cart item. Unbounded
// increments would let a buggy client drive quantities arbitrarily high;
// mutations past the cap are rejected.
const MaxItemQuantity = 100

// CartItem is a single (book, quantity) pair inside a cart.
type CartItem struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// Cart is a user's mutable collection of rental intents with a derived total.
// One cart exists per user, created lazily on first access; an empty cart is
// a valid persistent state.
type Cart struct {
	UserID     string     `json:"user_id"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for the given user.
func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ItemFor returns a pointer to the item holding bookID, or nil.
// At most one item per book exists in a cart.
func (c *Cart) ItemFor(bookID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem merges quantity into an existing item for bookID or appends a new
// one. Returns false when the resulting quantity would exceed MaxItemQuantity,
// leaving the cart unchanged.
func (c *Cart) AddItem(bookID string, quantity int) bool {
	if item := c.ItemFor(bookID); item != nil {
		if item.Quantity+quantity > MaxItemQuantity {
			return false
		}
		item.Quantity += quantity
		c.UpdatedAt = time.Now()
		return true
	}
	if quantity > MaxItemQuantity {
		return false
	}
	c.Items = append(c.Items, CartItem{BookID: bookID, Quantity: quantity})
	c.UpdatedAt = time.Now()
	return true
}

// SetQuantity sets the absolute quantity of the item for bookID.
// Returns false if no such item exists.
func (c *Cart) SetQuantity(bookID string, quantity int) bool {
	item := c.ItemFor(bookID)
	if item == nil {
		return false
	}
	item.Quantity = quantity
	c.UpdatedAt = time.Now()
	return true
}

// RemoveItem filters out the item for bookID. Removing a book that is not in
// the cart is not an error; the item list is simply unchanged.
func (c *Cart) RemoveItem(bookID string) {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear empties the item list and resets the total.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalPrice = 0
	c.UpdatedAt = time.Now()
}

// Recompute derives TotalPrice from current catalog prices. priceOf reports
// the live price for a book ID; items whose book cannot be resolved
// contribute nothing to the total (dangling references are not cascaded).
func (c *Cart) Recompute(priceOf func(bookID string) (float64, bool)) {
	var total float64
	for _, item := range c.Items {
		if price, ok := priceOf(item.BookID); ok {
			total += price * float64(item.Quantity)
		}
	}
	c.TotalPrice = total
}
