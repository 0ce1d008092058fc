package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// UserPage is one page of users
type UserPage struct {
	Users      []*entity.User    `json:"users"`
	Pagination entity.Pagination `json:"pagination"`
}

// UserUsecase defines the interface for admin user management
type UserUsecase interface {
	// ListUsers returns one page of users, newest first
	ListUsers(ctx context.Context, page, limit int) (*UserPage, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateRole changes a user's role on behalf of actor
	UpdateRole(ctx context.Context, actor *entity.User, targetID uuid.UUID, role entity.Role) (*entity.User, error)

	// DeleteUser removes a user on behalf of actor
	DeleteUser(ctx context.Context, actor *entity.User, targetID uuid.UUID) error
}
