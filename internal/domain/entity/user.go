// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account linked to an identity-provider subject.
type User struct {
	ID         uuid.UUID `json:"id"`          // The Global Unique Identifier (GUID) for the user.
	ExternalID string    `json:"external_id"` // The subject (uid) issued by the identity provider.
	Email      string    `json:"email"`       // The user's primary contact email.
	Name       string    `json:"name"`        // The user's display name.
	Phone      string    `json:"phone"`       // Optional contact phone number.
	Role       Role      `json:"role"`        // Gates access to the admin API.
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may use the back office.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}
