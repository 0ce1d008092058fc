package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const activeUserWindow = 30 * 24 * time.Hour

type dashboardService struct {
	statsRepo         repository.StatsRepository
	lowStockThreshold int
	now               func() time.Time
	logger            *slog.Logger
}

// DashboardServiceParams holds dependencies for DashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	StatsRepo repository.StatsRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	threshold := 0
	if params.Config != nil && params.Config.Catalog != nil {
		threshold = params.Config.Catalog.LowStockThreshold
	}

	return &dashboardService{
		statsRepo:         params.StatsRepo,
		lowStockThreshold: threshold,
		now:               time.Now,
		logger:            params.Logger,
	}
}

func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetDashboardStats refuses non-admin callers before running any query.
func (srv *dashboardService) GetDashboardStats(ctx context.Context, callerRole entity.Role) (*entity.DashboardStats, error) {
	if !callerRole.IsAdmin() {
		srv.log(ctx).Warn("Dashboard access denied", slog.String("role", callerRole.String()))

		return nil, domainerrors.ErrForbidden
	}

	now := srv.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &entity.DashboardStats{}
	var err error

	if stats.TotalUsers, err = srv.statsRepo.CountUsers(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	if stats.TotalOrders, err = srv.statsRepo.CountOrders(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}
	if stats.TotalProducts, err = srv.statsRepo.CountProducts(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}
	if stats.TotalRevenue, err = srv.statsRepo.SumPaidRevenue(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to sum revenue")
	}
	if stats.MonthlyRevenue, err = srv.statsRepo.SumPaidRevenue(ctx, &monthStart); err != nil {
		return nil, errors.Wrap(err, "failed to sum monthly revenue")
	}
	if stats.PendingOrders, err = srv.statsRepo.CountOrdersByStatus(ctx, entity.OrderStatusPending); err != nil {
		return nil, errors.Wrap(err, "failed to count pending orders")
	}
	if stats.ActiveUsers, err = srv.statsRepo.CountActiveUsers(ctx, now.Add(-activeUserWindow)); err != nil {
		return nil, errors.Wrap(err, "failed to count active users")
	}
	if stats.LowStockProducts, err = srv.statsRepo.CountLowStockProducts(ctx, srv.lowStockThreshold); err != nil {
		return nil, errors.Wrap(err, "failed to count low stock products")
	}
	if stats.TopProducts, err = srv.statsRepo.TopProducts(ctx, constants.DashboardTopN); err != nil {
		return nil, errors.Wrap(err, "failed to rank top products")
	}
	if stats.RecentOrders, err = srv.statsRepo.RecentOrders(ctx, constants.DashboardTopN); err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	if stats.TopProducts == nil {
		stats.TopProducts = []entity.TopProduct{}
	}
	if stats.RecentOrders == nil {
		stats.RecentOrders = []entity.OrderSummary{}
	}

	return stats, nil
}
