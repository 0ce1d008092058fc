package entity

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalUsers       int64          `json:"total_users"`
	TotalOrders      int64          `json:"total_orders"`
	TotalProducts    int64          `json:"total_products"`
	TotalRevenue     int64          `json:"total_revenue"`
	MonthlyRevenue   int64          `json:"monthly_revenue"`
	PendingOrders    int64          `json:"pending_orders"`
	ActiveUsers      int64          `json:"active_users"`
	LowStockProducts int64          `json:"low_stock_products"`
	TopProducts      []TopProduct   `json:"top_products"`
	RecentOrders     []OrderSummary `json:"recent_orders"`
}

// TopProduct ranks a product by units sold.
type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	TotalSold int64     `json:"total_sold"`
	Revenue   int64     `json:"revenue"`
}

// OrderSummary is the compact order row shown on the dashboard.
type OrderSummary struct {
	ID            uuid.UUID     `json:"id"`
	OrderNumber   string        `json:"order_number"`
	CustomerName  string        `json:"customer_name"`
	Total         int64         `json:"total"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Pagination describes a page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination computes page metadata from the total row count.
func NewPagination(page, limit int, totalCount int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((totalCount + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
