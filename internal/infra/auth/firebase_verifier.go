package auth

import (
	"context"

	"storefront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// firebaseVerifier verifies Firebase Auth ID tokens.
type firebaseVerifier struct {
	client *firebaseauth.Client
}

// NewFirebaseVerifier creates a verifier backed by the Firebase Auth client of app.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (service.IdentityVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*service.IdentityClaims, error) {
	verified, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "invalid firebase id token")
	}

	return &service.IdentityClaims{
		UID:           verified.UID,
		Email:         stringClaim(verified.Claims, "email"),
		EmailVerified: boolClaim(verified.Claims, "email_verified"),
		Name:          stringClaim(verified.Claims, "name"),
		Phone:         stringClaim(verified.Claims, "phone_number"),
	}, nil
}

func boolClaim(claims map[string]any, key string) bool {
	value, _ := claims[key].(bool)

	return value
}

func stringClaim(claims map[string]any, key string) string {
	value, _ := claims[key].(string)

	return value
}
