package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TaskHandler runs scheduled maintenance triggered over HTTP
type TaskHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// TaskHandlerParams holds dependencies for the TaskHandler
type TaskHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// NewTaskHandler creates a new scheduled task handler
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{cartUC: params.CartUC, logger: params.Logger}
}

// SweepCarts handles POST /tasks/sweep-carts
func (h *TaskHandler) SweepCarts(c echo.Context) error {
	result, err := h.cartUC.ClearExpiredCartItems(c.Request().Context())
	if err != nil {
		h.logger.Error("[Worker] Cart sweep failed", slog.Any("error", err))

		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.JSON(http.StatusOK, result)
}
