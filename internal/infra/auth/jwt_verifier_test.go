package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_identity_secret_key_very_long_for_testing"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func validClaims() *identityClaims {
	return &identityClaims{
		Email: "meera@example.com",
		Name:  "Meera",
		Phone: "+911234567890",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-123",
			Issuer:    "storefront-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestJWTVerifier_Verify(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, "storefront-test")
	require.NoError(t, err)

	claims, err := verifier.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.UID)
	assert.Equal(t, "meera@example.com", claims.Email)
	assert.Equal(t, "Meera", claims.Name)
	assert.Equal(t, "+911234567890", claims.Phone)
	assert.False(t, claims.EmailVerified)
}

func TestJWTVerifier_EmailVerified(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, "")
	require.NoError(t, err)

	verified := validClaims()
	verified.EmailVerified = true

	claims, err := verifier.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), verified))
	require.NoError(t, err)
	assert.True(t, claims.EmailVerified)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, "storefront-test")
	require.NoError(t, err)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	noSubject := validClaims()
	noSubject.Subject = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, []byte("another-secret"), validClaims())},
		{name: "wrong algorithm", token: signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())},
		{name: "expired", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{name: "wrong issuer", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer)},
		{name: "no subject", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject)},
		{name: "no expiry", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.Verify(context.Background(), tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestNewJWTVerifier_RequiresSecret(t *testing.T) {
	_, err := NewJWTVerifier("", "")
	assert.Error(t, err)
}
