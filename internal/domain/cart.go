package domain

import "time"

// Cart is a session-scoped collection of items. It stays Active until the
// sweeper flags it abandoned; abandoned carts are eventually purged.
type Cart struct {
	ID                string     `json:"id"`
	LastInteractionAt time.Time  `json:"lastInteractionAt"`
	AbandonedAt       *time.Time `json:"abandonedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	Items             []CartItem `json:"items,omitempty"`
}

// CartItem holds one product's quantity in a cart. UnitPriceCents is the
// catalog price captured when the item was first added; later catalog price
// changes do not affect a standing cart.
type CartItem struct {
	ID             string    `json:"id"`
	CartID         string    `json:"cartId"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TotalCents is the derived cart total. Empty carts total zero.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += int64(item.Quantity) * item.UnitPriceCents
	}
	return total
}

// Item returns the line for productID, or nil when the product is not in the cart.
func (c *Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Abandoned reports whether the cart has been flagged by the sweep.
func (c *Cart) Abandoned() bool {
	return c.AbandonedAt != nil
}

// MarkAbandoned sets AbandonedAt once. Re-marking an already abandoned cart
// keeps the original timestamp.
func (c *Cart) MarkAbandoned(now time.Time) {
	if c.AbandonedAt == nil {
		c.AbandonedAt = &now
	}
}
