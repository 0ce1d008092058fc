package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_SumPaidRevenue(t *testing.T) {
	t.Run("no paid orders sums to zero", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(total), 0) FROM "orders" WHERE payment_status = $1`)).
			WithArgs(string(entity.PaymentStatusPaid)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		sum, err := NewStatsRepository(db).SumPaidRevenue(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, sum)
	})

	t.Run("since bounds created_at", func(t *testing.T) {
		db, mock := newMockDB(t)
		since := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(total), 0) FROM "orders" WHERE payment_status = $1 AND created_at >= $2`)).
			WithArgs(string(entity.PaymentStatusPaid), since).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(45500))

		sum, err := NewStatsRepository(db).SumPaidRevenue(context.Background(), &since)
		require.NoError(t, err)
		assert.Equal(t, int64(45500), sum)
	})
}

func TestStatsRepository_TopProducts(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM order_items oi\s+JOIN products p ON p.id = oi.product_id[\s\S]+ORDER BY total_sold DESC, p.name ASC\s+LIMIT \$1`).
		WithArgs(int64(constants.DashboardTopN)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "total_sold", "revenue"}).
			AddRow(id.String(), "Banarasi Silk", 7, 87500))

	top, err := NewStatsRepository(db).TopProducts(context.Background(), constants.DashboardTopN)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, entity.TopProduct{ProductID: id, Name: "Banarasi Silk", TotalSold: 7, Revenue: 87500}, top[0])
}

func TestStatsRepository_RecentOrders(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()
	placed := time.Date(2026, 10, 12, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM orders o\s+LEFT JOIN addresses a ON a.id = o.address_id\s+ORDER BY o.created_at DESC\s+LIMIT \$1`).
		WithArgs(int64(constants.DashboardTopN)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "customer_name", "total", "status", "payment_status", "created_at"}).
			AddRow(id.String(), "COD17000000000001234", "Asha Patel", 12750, "PENDING", "PENDING", placed))

	recent, err := NewStatsRepository(db).RecentOrders(context.Background(), constants.DashboardTopN)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, id, recent[0].ID)
	assert.Equal(t, "Asha Patel", recent[0].CustomerName)
	assert.Equal(t, entity.OrderStatus("PENDING"), recent[0].Status)
	assert.Equal(t, placed, recent[0].CreatedAt)
}
