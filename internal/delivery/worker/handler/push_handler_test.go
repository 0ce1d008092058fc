package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	workermiddleware "storefront/internal/delivery/worker/middleware"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	mockService "storefront/internal/mocks/service"
	mockUsecase "storefront/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const adminTopic = "orders-admin"

func newTestPushHandler(t *testing.T, cfg *config.Config) (*PushHandler, *mockService.MockNotificationService) {
	notificationSvc := mockService.NewMockNotificationService(t)
	if cfg == nil {
		cfg = &config.Config{
			PubSub:       &config.PubSubConfig{},
			Notification: &config.NotificationConfig{AdminTopic: adminTopic},
		}
	}

	h := NewPushHandler(PushHandlerParams{
		Config:          cfg,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		NotificationSvc: notificationSvc,
	})

	return h, notificationSvc
}

func pushBody(t *testing.T, event *service.OrderPlacedEvent) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = map[string]string{"request_id": "req-attr"}
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func doPush(h *PushHandler, body string, header http.Header) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		req.Header[key] = values
	}
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func orderEvent() *service.OrderPlacedEvent {
	return &service.OrderPlacedEvent{
		OrderID:     "6f1c1d2e-0000-4000-8000-000000000001",
		OrderNumber: "COD17000000000001234",
		Total:       12750,
		ItemCount:   2,
	}
}

func TestPushHandler_NotifiesAdmins(t *testing.T) {
	h, notificationSvc := newTestPushHandler(t, nil)

	notificationSvc.EXPECT().
		SendTopicNotification(mock.Anything, adminTopic, "New order COD17000000000001234", mock.AnythingOfType("string"), mock.Anything).
		RunAndReturn(func(ctx context.Context, topic, title, body string, data map[string]string) error {
			assert.Contains(t, body, "2 items")
			assert.Equal(t, "COD17000000000001234", data["order_number"])
			assert.Equal(t, "12750", data["total"])

			return nil
		}).
		Once()

	rec := doPush(h, pushBody(t, orderEvent()), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_RetriesWhenNotificationFails(t *testing.T) {
	h, notificationSvc := newTestPushHandler(t, nil)

	notificationSvc.EXPECT().
		SendTopicNotification(mock.Anything, adminTopic, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("fcm unavailable")).
		Once()

	rec := doPush(h, pushBody(t, orderEvent()), nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPushHandler_DropsMalformedMessages(t *testing.T) {
	h, _ := newTestPushHandler(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "not base64", body: `{"message":{"data":"%%%"}}`},
		{name: "not an order event", body: `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte(`{"foo":1}`)) + `"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doPush(h, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPushHandler_SkipsWithoutAdminTopic(t *testing.T) {
	h, _ := newTestPushHandler(t, &config.Config{
		PubSub:       &config.PubSubConfig{},
		Notification: &config.NotificationConfig{},
	})

	rec := doPush(h, pushBody(t, orderEvent()), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTaskHandler_SweepCarts(t *testing.T) {
	cartUC := mockUsecase.NewMockCartUsecase(t)
	h := NewTaskHandler(TaskHandlerParams{CartUC: cartUC, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	e := echo.New()

	cartUC.EXPECT().ClearExpiredCartItems(mock.Anything).
		Return(&entity.SweepResult{RemovedInactive: 2, RemovedNoStock: 1, Clamped: 3}, nil).
		Once()

	rec := httptest.NewRecorder()
	require.NoError(t, h.SweepCarts(e.NewContext(httptest.NewRequest(http.MethodPost, "/tasks/sweep-carts", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed_inactive":2,"removed_no_stock":1,"clamped":3}`, rec.Body.String())

	cartUC.EXPECT().ClearExpiredCartItems(mock.Anything).Return(nil, errors.New("db down")).Once()

	rec = httptest.NewRecorder()
	require.NoError(t, h.SweepCarts(e.NewContext(httptest.NewRequest(http.MethodPost, "/tasks/sweep-carts", nil), rec)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTaskHandler_SweepCartsRejectsMissingToken(t *testing.T) {
	cartUC := mockUsecase.NewMockCartUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewTaskHandler(TaskHandlerParams{CartUC: cartUC, Logger: logger})

	oidc := workermiddleware.NewOIDCMiddleware(workermiddleware.OIDCMiddlewareParams{
		Config: &config.Config{PubSub: &config.PubSubConfig{VerifyPush: true}},
		Logger: logger,
	})

	e := echo.New()
	e.POST("/tasks/sweep-carts", h.SweepCarts, oidc.Require(""))

	for _, header := range []string{"", "Basic c2NoZWR1bGVy"} {
		req := httptest.NewRequest(http.MethodPost, "/tasks/sweep-carts", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	cartUC.AssertNotCalled(t, "ClearExpiredCartItems", mock.Anything)
}
