package handler

import (
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// AuthHandler exposes the caller's identity to the client
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// CheckRoleResponse is used by the client to gate admin screens
type CheckRoleResponse struct {
	Role    entity.Role `json:"role"`
	IsAdmin bool        `json:"is_admin"`
}

// CheckRole handles GET /api/auth/check-role
func (h *AuthHandler) CheckRole(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "User not found in context")
	}

	return response.Success(c, http.StatusOK, CheckRoleResponse{
		Role:    user.Role,
		IsAdmin: user.IsAdmin(),
	})
}
