package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// StatsRepository runs the aggregate queries behind the admin dashboard.
type StatsRepository interface {
	// CountUsers counts every user.
	CountUsers(ctx context.Context) (int64, error)

	// CountOrders counts every order.
	CountOrders(ctx context.Context) (int64, error)

	// CountProducts counts every product.
	CountProducts(ctx context.Context) (int64, error)

	// SumPaidRevenue sums the totals of paid orders created at or after since.
	// A nil since covers all time. Returns 0 when there are no paid orders.
	SumPaidRevenue(ctx context.Context, since *time.Time) (int64, error)

	// CountOrdersByStatus counts orders with the given status.
	CountOrdersByStatus(ctx context.Context, status entity.OrderStatus) (int64, error)

	// CountActiveUsers counts distinct users that placed an order at or after since.
	CountActiveUsers(ctx context.Context, since time.Time) (int64, error)

	// CountLowStockProducts counts active products with stock at or below threshold.
	CountLowStockProducts(ctx context.Context, threshold int) (int64, error)

	// TopProducts ranks products by units sold.
	TopProducts(ctx context.Context, limit int) ([]entity.TopProduct, error)

	// RecentOrders returns the newest orders.
	RecentOrders(ctx context.Context, limit int) ([]entity.OrderSummary, error)
}
