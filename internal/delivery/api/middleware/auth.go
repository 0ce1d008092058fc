package middleware

import (
	"strings"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	contextKeyUser   = "user"
	contextKeyUserID = "userID"

	bearerPrefix = "Bearer "
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
}

// AuthMiddleware resolves bearer tokens to users and enforces roles.
type AuthMiddleware struct {
	identityUC usecase.IdentityUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{identityUC: params.IdentityUC}
}

// Authenticate requires a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Authorization header is missing or malformed")
		}

		if err := m.resolve(c, token); err != nil {
			return response.HandleAppError(c, err)
		}

		return next(c)
	}
}

// OptionalAuthenticate attaches the user when a bearer token is present and
// lets anonymous requests through. A token that fails verification is rejected.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		if err := m.resolve(c, token); err != nil {
			return response.HandleAppError(c, err)
		}

		return next(c)
	}
}

// RequireRole allows only users holding one of roles. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := GetUser(c)
			if !ok {
				return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), domainerrors.ErrUnauthorized.Message())
			}

			if !allowed.Contains(user.Role) {
				return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), domainerrors.ErrForbidden.Message())
			}

			return next(c)
		}
	}
}

// RequireAdmin allows ADMIN and SUPER_ADMIN.
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return m.RequireRole(entity.AdminRoles...)
}

func (m *AuthMiddleware) resolve(c echo.Context, token string) error {
	req := c.Request()

	user, err := m.identityUC.ResolveUser(req.Context(), token)
	if err != nil {
		return err
	}

	c.Set(contextKeyUser, user)
	c.Set(contextKeyUserID, user.ID)
	c.SetRequest(req.WithContext(deliverycontext.WithUserID(req.Context(), user.ID)))

	return nil
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

	return token, token != ""
}

// GetUser returns the authenticated user, if any.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextKeyUser).(*entity.User)

	return user, ok && user != nil
}

// GetUserID returns the authenticated user's ID, if any.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}
