package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks fulfilment.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is known.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks collection of the payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the payment status is known.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// PaymentMethodCOD is cash on delivery, the only method offered.
const PaymentMethodCOD = "COD"

// Order is an immutable purchase record. Only Status, PaymentStatus and
// TrackingNumber change after creation.
type Order struct {
	ID             uuid.UUID     `json:"id"`
	OrderNumber    string        `json:"order_number"`
	UserID         *uuid.UUID    `json:"user_id,omitempty"` // Nil for guest orders.
	AddressID      uuid.UUID     `json:"address_id"`
	Address        *Address      `json:"address,omitempty"`
	Status         OrderStatus   `json:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	PaymentMethod  string        `json:"payment_method"`
	Subtotal       int64         `json:"subtotal"`
	Tax            int64         `json:"tax"`
	Shipping       int64         `json:"shipping"`
	Discount       int64         `json:"discount"`
	Total          int64         `json:"total"`
	Notes          string        `json:"notes,omitempty"`
	TrackingNumber string        `json:"tracking_number,omitempty"`
	Items          []*OrderItem  `json:"items"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// OrderItem snapshots a product line at the time of purchase.
type OrderItem struct {
	ID          uuid.UUID            `json:"id"`
	OrderID     uuid.UUID            `json:"order_id"`
	ProductID   uuid.UUID            `json:"product_id"`
	ProductName string               `json:"product_name"`
	Price       int64                `json:"price"`
	Quantity    int                  `json:"quantity"`
	Attributes  []OrderItemAttribute `json:"attributes,omitempty"`
}

// OrderItemAttribute is a structured variant selection such as color or size.
type OrderItemAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Common attribute keys.
const (
	AttributeColor = "color"
	AttributeSize  = "size"
)

// VariantAttributes builds the attribute list for the non-empty selections.
func VariantAttributes(color, size string) []OrderItemAttribute {
	var attrs []OrderItemAttribute
	if color != "" {
		attrs = append(attrs, OrderItemAttribute{Key: AttributeColor, Value: color})
	}
	if size != "" {
		attrs = append(attrs, OrderItemAttribute{Key: AttributeSize, Value: size})
	}

	return attrs
}
