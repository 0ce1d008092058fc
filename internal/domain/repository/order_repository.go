package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNumberTaken is returned when an order number collides on insert.
	ErrOrderNumberTaken = errors.New("order number already taken")
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID        *uuid.UUID
	Status        *entity.OrderStatus
	PaymentStatus *entity.PaymentStatus
	Limit         int
}

// OrderStatusUpdate carries the mutable fields of an order. Nil fields are left untouched.
type OrderStatusUpdate struct {
	Status         *entity.OrderStatus
	PaymentStatus  *entity.PaymentStatus
	TrackingNumber *string
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists an order with its items and their attributes.
	Create(ctx context.Context, order *entity.Order) error

	// ExistsByOrderNumber reports whether an order number is already used.
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// FindByID retrieves an order with its address, items and attributes.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)

	// UpdateStatus applies the non-nil fields of update.
	UpdateStatus(ctx context.Context, id uuid.UUID, update OrderStatusUpdate) error
}
