// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"
)

// IdentityClaims is the verified identity behind a bearer token.
type IdentityClaims struct {
	UID           string // Provider-specific user ID
	Email         string // User's email address
	EmailVerified bool   // Whether the provider has verified Email
	Name          string // User's display name
	Phone         string // Phone number, when the provider has one
}

// IdentityVerifier verifies bearer tokens issued by the identity provider.
// The storefront only consumes tokens; issuing them is the provider's job.
type IdentityVerifier interface {
	// Verify checks the token signature and expiry and returns its claims.
	Verify(ctx context.Context, token string) (*IdentityClaims, error)
}
