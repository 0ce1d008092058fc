package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// DashboardUsecase defines the interface for the admin dashboard
type DashboardUsecase interface {
	// GetDashboardStats aggregates store statistics. Callers without an admin role are refused
	// before any query runs.
	GetDashboardStats(ctx context.Context, callerRole entity.Role) (*entity.DashboardStats, error)
}
