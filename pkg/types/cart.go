package types

import "time"

// CartLine is one (menu item, quantity) pair in a user's cart. Lines are
// unique per menu item within a cart; re-adding increments quantity.
type CartLine struct {
	ID         int64     `json:"id"`
	CartID     int64     `json:"cartId"`
	MenuItemID int64     `json:"menuItemId"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Cart holds at most one mutable cart per user. It is created lazily on the
// first add and survives (empty) after checkout or clear.
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Lines     []CartLine `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// PricedCartLine is a cart line enriched with the current catalog item for
// display. Amount uses the live unit price; it is never persisted and has no
// bearing on the price snapshot taken at checkout.
type PricedCartLine struct {
	CartLine
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unitPrice"`
	IsAvailable bool    `json:"isAvailable"`
	Amount      float64 `json:"amount"`
}

// CartView is the read model returned to callers: lines with live pricing
// plus a running subtotal.
type CartView struct {
	Cart     Cart             `json:"cart"`
	Lines    []PricedCartLine `json:"lines"`
	Subtotal float64          `json:"subtotal"`
}
