package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// statsRepository runs dashboard aggregates against the read replicas.
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) read(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Clauses(dbresolver.Read)
}

func (repo *statsRepository) count(ctx context.Context, value any, what string) (int64, error) {
	var n int64
	if err := repo.read(ctx).Model(value).Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "failed to count %s", what)
	}

	return n, nil
}

func (repo *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	return repo.count(ctx, &model.UserModel{}, "users")
}

func (repo *statsRepository) CountOrders(ctx context.Context) (int64, error) {
	return repo.count(ctx, &model.OrderModel{}, "orders")
}

func (repo *statsRepository) CountProducts(ctx context.Context) (int64, error) {
	return repo.count(ctx, &model.ProductModel{}, "products")
}

// SumPaidRevenue sums paid order totals, coalescing an empty sum to zero.
func (repo *statsRepository) SumPaidRevenue(ctx context.Context, since *time.Time) (int64, error) {
	query := repo.read(ctx).
		Model(&model.OrderModel{}).
		Select("COALESCE(SUM(total), 0)").
		Where("payment_status = ?", string(entity.PaymentStatusPaid))
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var sum int64
	if err := query.Scan(&sum).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum paid revenue")
	}

	return sum, nil
}

func (repo *statsRepository) CountOrdersByStatus(ctx context.Context, status entity.OrderStatus) (int64, error) {
	var n int64
	if err := repo.read(ctx).
		Model(&model.OrderModel{}).
		Where("status = ?", string(status)).
		Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders by status")
	}

	return n, nil
}

func (repo *statsRepository) CountActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := repo.read(ctx).
		Model(&model.OrderModel{}).
		Where("user_id IS NOT NULL AND created_at >= ?", since).
		Distinct("user_id").
		Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count active users")
	}

	return n, nil
}

func (repo *statsRepository) CountLowStockProducts(ctx context.Context, threshold int) (int64, error) {
	var n int64
	if err := repo.read(ctx).
		Model(&model.ProductModel{}).
		Where("is_active = ? AND stock <= ?", true, threshold).
		Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count low stock products")
	}

	return n, nil
}

// TopProducts ranks products by units sold across all orders.
func (repo *statsRepository) TopProducts(ctx context.Context, limit int) ([]entity.TopProduct, error) {
	var rows []struct {
		ProductID uuid.UUID
		Name      string
		TotalSold int64
		Revenue   int64
	}
	if err := repo.read(ctx).Raw(`
		SELECT oi.product_id, p.name, SUM(oi.quantity) AS total_sold, SUM(oi.quantity * oi.price) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY oi.product_id, p.name
		ORDER BY total_sold DESC, p.name ASC
		LIMIT ?
	`, limit).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank top products")
	}

	top := make([]entity.TopProduct, 0, len(rows))
	for _, row := range rows {
		top = append(top, entity.TopProduct{
			ProductID: row.ProductID,
			Name:      row.Name,
			TotalSold: row.TotalSold,
			Revenue:   row.Revenue,
		})
	}

	return top, nil
}

// RecentOrders lists the newest orders with the shipping name as customer.
func (repo *statsRepository) RecentOrders(ctx context.Context, limit int) ([]entity.OrderSummary, error) {
	var rows []struct {
		ID            uuid.UUID
		OrderNumber   string
		CustomerName  string
		Total         int64
		Status        string
		PaymentStatus string
		CreatedAt     time.Time
	}
	if err := repo.read(ctx).Raw(`
		SELECT o.id, o.order_number, COALESCE(a.full_name, '') AS customer_name, o.total, o.status, o.payment_status, o.created_at
		FROM orders o
		LEFT JOIN addresses a ON a.id = o.address_id
		ORDER BY o.created_at DESC
		LIMIT ?
	`, limit).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	recent := make([]entity.OrderSummary, 0, len(rows))
	for _, row := range rows {
		recent = append(recent, entity.OrderSummary{
			ID:            row.ID,
			OrderNumber:   row.OrderNumber,
			CustomerName:  row.CustomerName,
			Total:         row.Total,
			Status:        entity.OrderStatus(row.Status),
			PaymentStatus: entity.PaymentStatus(row.PaymentStatus),
			CreatedAt:     row.CreatedAt,
		})
	}

	return recent, nil
}
