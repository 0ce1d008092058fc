package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 500
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	DashboardUC usecase.DashboardUsecase
	UserUC      usecase.UserUsecase
	CartUC      usecase.CartUsecase
	LogBuffer   service.LogBuffer
	Logger      *slog.Logger
}

// AdminHandler serves the back-office dashboard, user management and maintenance
type AdminHandler struct {
	dashboardUC usecase.DashboardUsecase
	userUC      usecase.UserUsecase
	cartUC      usecase.CartUsecase
	logBuffer   service.LogBuffer
	logger      *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		dashboardUC: params.DashboardUC,
		userUC:      params.UserUC,
		cartUC:      params.CartUC,
		logBuffer:   params.LogBuffer,
		logger:      params.Logger,
	}
}

// UpdateRoleRequest represents the request body for changing a user's role
type UpdateRoleRequest struct {
	Role entity.Role `json:"role" validate:"required,oneof=USER ADMIN SUPER_ADMIN"`
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "User not found in context")
	}

	stats, err := h.dashboardUC.GetDashboardStats(c.Request().Context(), user.Role)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "page must be an integer")
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "limit must be an integer")
	}

	users, err := h.userUC.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	user, err := h.userUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// UpdateUserRole handles PATCH /api/admin/users/:id
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	actor, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "User not found in context")
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.userUC.UpdateRole(c.Request().Context(), actor, targetID, req.Role)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "User not found in context")
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), actor, targetID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "User deleted successfully")
}

// SweepCarts handles POST /api/admin/maintenance/sweep-carts
func (h *AdminHandler) SweepCarts(c echo.Context) error {
	result, err := h.cartUC.ClearExpiredCartItems(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// Logs handles GET /api/admin/logs?level=warn&limit=100
func (h *AdminHandler) Logs(c echo.Context) error {
	level := slog.LevelInfo
	if raw := c.QueryParam("level"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "level must be one of debug, info, warn, error")
		}
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "limit must be an integer")
	}
	if limit <= 0 {
		limit = defaultLogLimit
	}
	limit = min(limit, maxLogLimit)

	return response.Success(c, http.StatusOK, h.logBuffer.Entries(level, limit))
}
