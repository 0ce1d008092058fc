// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is a domain-specific error returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when the external identity is already linked to a user.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByExternalID retrieves the user linked to an identity-provider subject.
	FindByExternalID(ctx context.Context, externalID string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies the profile fields of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// UpdateRole changes the role of a user.
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error

	// Delete removes a user. Addresses, orders and the cart cascade in storage.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of users, newest first, with the total count.
	List(ctx context.Context, offset int, limit int) ([]*entity.User, int64, error)
}
