package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a shipping address captured at checkout.
type Address struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"` // Nil for guest checkouts.
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Line1      string     `json:"line1"`
	Line2      string     `json:"line2,omitempty"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	PostalCode string     `json:"postal_code"`
	Country    string     `json:"country"`
	CreatedAt  time.Time  `json:"created_at"`
}
