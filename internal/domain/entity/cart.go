package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the per-user basket. Each user owns at most one.
type Cart struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Items     []*CartItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// IsEmpty reports whether the cart is missing or holds no items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// CartItem is a product line in a cart. Price is locked when the item is added
// and only changes through an explicit price refresh.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	CartID    uuid.UUID `json:"cart_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
	Color     string    `json:"color,omitempty"`
	Size      string    `json:"size,omitempty"`
	Product   *Product  `json:"product,omitempty"` // Current catalog state; loaded by repositories that preload it.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineTotal is the locked price times quantity.
func (i *CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// CartTotals summarizes a cart using locked prices.
type CartTotals struct {
	Subtotal  int64       `json:"subtotal"`
	ItemCount int         `json:"item_count"` // Sum of quantities, not distinct lines.
	Items     []*CartItem `json:"items"`
}

// InsufficientStockItem describes a cart line asking for more than is in stock.
type InsufficientStockItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// CartValidation is the checkout readiness report for a cart.
type CartValidation struct {
	IsValid                bool                    `json:"is_valid"`
	Errors                 []string                `json:"errors"`
	UnavailableItems       []string                `json:"unavailable_items"`
	InsufficientStockItems []InsufficientStockItem `json:"insufficient_stock_items"`
}

// SweepResult counts what a cart sweep changed.
type SweepResult struct {
	RemovedInactive int64 `json:"removed_inactive"`
	RemovedNoStock  int   `json:"removed_no_stock"`
	Clamped         int   `json:"clamped"`
}
