package service

import (
	"context"
	"time"
)

// OrderPlacedEvent is published after an order transaction commits
type OrderPlacedEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id,omitempty"`
	Total       int64     `json:"total"`
	ItemCount   int       `json:"item_count"`
	PlacedAt    time.Time `json:"placed_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderPlaced publishes an order-placed event for async processing
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
