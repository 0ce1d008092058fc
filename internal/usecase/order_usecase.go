package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ShippingInput holds the submitted shipping address fields
type ShippingInput struct {
	FullName   string `json:"full_name" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required,max=32"`
	Email      string `json:"email" validate:"omitempty,email"`
	Line1      string `json:"line1" validate:"required,max=255"`
	Line2      string `json:"line2" validate:"max=255"`
	City       string `json:"city" validate:"required,max=120"`
	State      string `json:"state" validate:"required,max=120"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=80"`
}

// OrderItemInput is one line of a buy-now order
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Color     string    `json:"color" validate:"max=64"`
	Size      string    `json:"size" validate:"max=64"`
}

// PlaceOrderInput represents the input for placing an order
type PlaceOrderInput struct {
	// UserID is nil for guest checkout
	UserID   *uuid.UUID       `json:"-"`
	Items    []OrderItemInput `json:"items" validate:"omitempty,dive"`
	UseCart  bool             `json:"use_cart"`
	Shipping ShippingInput    `json:"shipping" validate:"required"`
	Notes    string           `json:"notes" validate:"max=1000"`
}

// OrderListFilter narrows the admin order listing
type OrderListFilter struct {
	Status        *entity.OrderStatus
	PaymentStatus *entity.PaymentStatus
	Limit         int
}

// UpdateOrderStatusInput represents the input for updating an order. Nil fields are left untouched.
type UpdateOrderStatusInput struct {
	Status         *entity.OrderStatus   `json:"status,omitempty"`
	PaymentStatus  *entity.PaymentStatus `json:"payment_status,omitempty"`
	TrackingNumber *string               `json:"tracking_number,omitempty"`
}

// OrderUsecase defines the interface for order use cases
type OrderUsecase interface {
	// PlaceOrder creates an order atomically: address, order number, stock, items and cart clearing
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error)

	// GetOrder retrieves an order with its items
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// ListOrders lists orders for administrators
	ListOrders(ctx context.Context, filter *OrderListFilter) ([]*entity.Order, error)

	// ListMyOrders lists the caller's own orders
	ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// UpdateOrderStatus changes the fulfilment or payment state of an order
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input *UpdateOrderStatusInput) (*entity.Order, error)

	// OrderQRCode renders the order number as a PNG QR code
	OrderQRCode(ctx context.Context, orderID uuid.UUID) ([]byte, error)
}
