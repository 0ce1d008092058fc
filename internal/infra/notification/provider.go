package notification

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/infra/firebase"

	"go.uber.org/fx"
)

// noopService drops notifications when no admin topic is configured
type noopService struct {
	logger *slog.Logger
}

func (s *noopService) SendTopicNotification(ctx context.Context, topic, title, body string, data map[string]string) error {
	s.logger.Debug("[NoopNotification] Notifications disabled, skipping", slog.String("title", title))

	return nil
}

// ServiceParams holds dependencies for NotificationService, injected by Fx
type ServiceParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewNotificationService creates a NotificationService based on configuration
func NewNotificationService(params ServiceParams) (service.NotificationService, error) {
	if params.Config.Notification.AdminTopic == "" {
		params.Logger.Info("Admin notification topic not configured, using no-op notifications")

		return &noopService{logger: params.Logger}, nil
	}

	app, err := firebase.NewApp(params.Ctx, params.Config.Firebase)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Using Firebase Cloud Messaging for admin notifications",
		slog.String("topic", params.Config.Notification.AdminTopic),
	)

	return NewFirebaseService(params.Ctx, app)
}

// Module provides the notification FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewNotificationService),
)
