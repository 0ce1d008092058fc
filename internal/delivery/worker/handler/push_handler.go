package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PushHandler turns order-placed events into admin notifications
type PushHandler struct {
	adminTopic      string
	logger          *slog.Logger
	notificationSvc service.NotificationService
	printer         *message.Printer
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config          *config.Config
	Logger          *slog.Logger
	NotificationSvc service.NotificationService
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	return &PushHandler{
		adminTopic:      params.Config.Notification.AdminTopic,
		logger:          params.Logger,
		notificationSvc: params.NotificationSvc,
		printer:         message.NewPrinter(language.English),
	}
}

// HandlePush handles incoming Pub/Sub push messages. The OIDC token is checked by the worker middleware.
// 503 asks Pub/Sub to redeliver; malformed messages are answered 400 and dropped.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.OrderPlacedEvent
	if err := json.Unmarshal(data, &event); err != nil || event.OrderNumber == "" {
		h.logger.Error("[Worker] Failed to parse order event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if h.adminTopic == "" {
		reqLogger.Debug("[Worker] No admin topic configured, dropping order event",
			slog.String("order_number", event.OrderNumber),
		)

		return c.NoContent(http.StatusOK)
	}

	title, body, payload := h.prepareNotificationContent(&event)
	if err := h.notificationSvc.SendTopicNotification(ctx, h.adminTopic, title, body, payload); err != nil {
		reqLogger.Error("[Worker] Failed to notify admins",
			slog.String("order_number", event.OrderNumber),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusServiceUnavailable)
	}

	reqLogger.Info("[Worker] Admins notified of new order",
		slog.String("order_number", event.OrderNumber),
		slog.Int64("total", event.Total),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the event, then the request context
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.OrderPlacedEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// prepareNotificationContent creates the notification title, body, and data
func (h *PushHandler) prepareNotificationContent(event *service.OrderPlacedEvent) (title, body string, data map[string]string) {
	title = "New order " + event.OrderNumber

	amount := currency.INR.Amount(float64(event.Total) / 100)
	items := "items"
	if event.ItemCount == 1 {
		items = "item"
	}
	body = h.printer.Sprintf("%d %s, total %v", event.ItemCount, items, currency.Symbol(amount))

	data = map[string]string{
		"order_id":     event.OrderID,
		"order_number": event.OrderNumber,
		"total":        fmt.Sprintf("%d", event.Total),
	}

	return title, body, data
}
