package handler

import (
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
}

// OrderHandler serves checkout and order management
type OrderHandler struct {
	orderUC usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{orderUC: params.OrderUC}
}

// PlaceOrderResponse is returned after a successful checkout
type PlaceOrderResponse struct {
	Success bool          `json:"success"`
	Order   *entity.Order `json:"order"`
}

// PlaceOrder handles POST /api/orders. Guests may order; a signed-in caller is linked to the order.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	req.UserID = nil
	if userID, ok := middleware.GetUserID(c); ok {
		req.UserID = &userID
	}

	order, err := h.orderUC.PlaceOrder(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, PlaceOrderResponse{Success: true, Order: order})
}

// ListMyOrders handles GET /api/orders/mine
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.orderUC.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// ListOrders handles GET /api/orders and GET /api/admin/orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	filter := &usecase.OrderListFilter{}

	if raw := c.QueryParam("status"); raw != "" {
		status := entity.OrderStatus(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam("payment_status"); raw != "" {
		paymentStatus := entity.PaymentStatus(raw)
		filter.PaymentStatus = &paymentStatus
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", "limit must be an integer")
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/admin/orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// UpdateOrder handles PATCH /api/admin/orders/:id
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req usecase.UpdateOrderStatusInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order update")
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), orderID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// OrderQRCode handles GET /api/admin/orders/:id/qr
func (h *OrderHandler) OrderQRCode(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	png, err := h.orderUC.OrderQRCode(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
