package worker

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/worker/handler"
	workermiddleware "storefront/internal/delivery/worker/middleware"
	mockService "storefront/internal/mocks/service"
	mockUsecase "storefront/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWorkerRoutes_RequireOIDCToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		PubSub:       &config.PubSubConfig{VerifyPush: true},
		Notification: &config.NotificationConfig{AdminTopic: "orders-admin"},
	}
	cfg.Worker.MaxRequestBodySize = "100KB"

	cartUC := mockUsecase.NewMockCartUsecase(t)
	notificationSvc := mockService.NewMockNotificationService(t)

	e := newEcho(ServerParams{
		Cfg:         cfg,
		Logger:      logger,
		PushHandler: handler.NewPushHandler(handler.PushHandlerParams{Config: cfg, Logger: logger, NotificationSvc: notificationSvc}),
		TaskHandler: handler.NewTaskHandler(handler.TaskHandlerParams{CartUC: cartUC, Logger: logger}),
		OIDC:        workermiddleware.NewOIDCMiddleware(workermiddleware.OIDCMiddlewareParams{Config: cfg, Logger: logger}),
	})

	tests := []struct {
		method   string
		path     string
		wantCode int
	}{
		{method: http.MethodGet, path: "/health", wantCode: http.StatusOK},
		{method: http.MethodPost, path: "/push", wantCode: http.StatusUnauthorized},
		{method: http.MethodPost, path: "/tasks/sweep-carts", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}

	cartUC.AssertNotCalled(t, "ClearExpiredCartItems", mock.Anything)
	notificationSvc.AssertNotCalled(t, "SendTopicNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
