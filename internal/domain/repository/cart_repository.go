package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrCartNotFound is returned when a user has no cart yet.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a cart has no line for a product.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrCartItemExists is returned when a cart already has a line for the product.
	ErrCartItemExists = errors.New("cart item already exists")
)

// CartRepository defines the interface for cart persistence.
type CartRepository interface {
	// FindByUserID retrieves the user's cart with its items and their current products.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// GetOrCreate returns the user's cart, creating an empty one when missing.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// FindItem retrieves the line for a product in a cart.
	FindItem(ctx context.Context, cartID uuid.UUID, productID uuid.UUID) (*entity.CartItem, error)

	// CreateItem adds a new line to a cart. Returns ErrCartItemExists when the
	// product already has a line in the cart.
	CreateItem(ctx context.Context, item *entity.CartItem) error

	// UpdateItemQuantity sets the quantity of a line.
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error

	// UpdateItemPrice sets the locked price of a line.
	UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price int64) error

	// DeleteItem removes a line.
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// ClearItems removes every line of a cart.
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// DeleteItemsForInactiveProducts removes, in one statement, every line whose
	// product is inactive, and returns how many were removed.
	DeleteItemsForInactiveProducts(ctx context.Context) (int64, error)

	// ListItemsWithProducts returns every cart line across all carts with its product.
	ListItemsWithProducts(ctx context.Context) ([]*entity.CartItem, error)
}
