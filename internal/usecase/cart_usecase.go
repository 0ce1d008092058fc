package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartItemInput represents the input for adding a product to a cart
type CartItemInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
}

// CartView is a cart together with its totals
type CartView struct {
	Cart   *entity.Cart       `json:"cart"`
	Totals *entity.CartTotals `json:"totals"`
}

// CartUsecase defines the interface for shopping cart use cases
type CartUsecase interface {
	// GetCart returns the user's cart, creating an empty one on first access
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)

	// AddItem adds a product to the cart or merges it into the existing line
	AddItem(ctx context.Context, userID uuid.UUID, input *CartItemInput) (*CartView, error)

	// UpdateItem sets the quantity of a line. Zero removes it.
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartView, error)

	// RemoveItem removes the line for a product
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error)

	// ClearCart removes every line from the user's cart
	ClearCart(ctx context.Context, userID uuid.UUID) error

	// ValidateCart checks every line against the live catalog. It never fails;
	// storage problems are reported through the result.
	ValidateCart(ctx context.Context, userID uuid.UUID) *entity.CartValidation

	// UpdateCartItemPrices rewrites locked prices that drifted from the catalog
	UpdateCartItemPrices(ctx context.Context, userID uuid.UUID) error

	// CalculateCartTotals sums the cart at its locked prices. A missing cart
	// or a storage failure yields zero totals.
	CalculateCartTotals(ctx context.Context, userID uuid.UUID) *entity.CartTotals

	// ClearExpiredCartItems reconciles every cart in the store against stock and product state
	ClearExpiredCartItems(ctx context.Context) (*entity.SweepResult, error)
}
