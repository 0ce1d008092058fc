package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// IdentityUsecase resolves bearer tokens to storefront users
type IdentityUsecase interface {
	// ResolveUser verifies the token and returns the linked user, creating it on first sign-in
	ResolveUser(ctx context.Context, token string) (*entity.User, error)
}
