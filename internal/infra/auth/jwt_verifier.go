// Package auth provides concrete implementations of the identity verifier.
package auth

import (
	"context"

	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// identityClaims are the claims read from an HS256 token.
type identityClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Phone         string `json:"phone_number"`
	jwt.RegisteredClaims
}

// jwtVerifier verifies HS256 tokens signed with a shared secret.
type jwtVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier is the constructor for jwtVerifier. An empty issuer skips the iss check.
func NewJWTVerifier(secret, issuer string) (service.IdentityVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtVerifier{secret: []byte(secret), issuer: issuer}, nil
}

// Verify checks signature, expiry and issuer and maps the claims.
func (v *jwtVerifier) Verify(ctx context.Context, tokenString string) (*service.IdentityClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &identityClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}

	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return &service.IdentityClaims{
		UID:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Phone:         claims.Phone,
	}, nil
}
