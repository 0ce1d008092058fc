// Package middleware holds worker-only echo middleware.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront/config"
	"storefront/internal/domain/constants"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// TokenValidator validates a Google-signed OIDC token for audience.
type TokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// OIDCMiddleware rejects requests without a valid Google OIDC token. Pub/Sub push
// subscriptions and Cloud Scheduler both attach one.
type OIDCMiddleware struct {
	enabled       bool
	validateToken TokenValidator
	logger        *slog.Logger
}

// OIDCMiddlewareParams holds dependencies for OIDCMiddleware, injected by Fx.
type OIDCMiddlewareParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewOIDCMiddleware is the constructor for OIDCMiddleware.
func NewOIDCMiddleware(params OIDCMiddlewareParams) *OIDCMiddleware {
	// Local development pushes come straight from the storefront without a token
	enabled := params.Config.PubSub.VerifyPush && params.Config.Env.Env != constants.EnvDevelop

	return newOIDCMiddleware(enabled, idtoken.Validate, params.Logger)
}

func newOIDCMiddleware(enabled bool, validate TokenValidator, logger *slog.Logger) *OIDCMiddleware {
	return &OIDCMiddleware{enabled: enabled, validateToken: validate, logger: logger}
}

// Require verifies the token against audience. An empty audience is derived from the request URL.
func (m *OIDCMiddleware) Require(audience string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.enabled {
				return next(c)
			}

			if err := m.verify(c.Request(), audience); err != nil {
				m.logger.Warn("[Worker] Rejected OIDC token",
					slog.String("path", c.Request().URL.Path),
					slog.Any("error", err),
				)

				return c.NoContent(http.StatusUnauthorized)
			}

			return next(c)
		}
	}
}

// verify follows https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (m *OIDCMiddleware) verify(req *http.Request, audience string) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return errors.New("invalid authorization header format")
	}

	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := m.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
