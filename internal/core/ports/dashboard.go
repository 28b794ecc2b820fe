package ports

import (
	"context"
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// DashboardScope names the foreign key a rollup is filtered on.
type DashboardScope string

const (
	ScopeCompany      DashboardScope = "company_id"
	ScopeManager      DashboardScope = "manager_id"
	ScopeVehicleOwner DashboardScope = "vehicle_owner_id"
	ScopeDriver       DashboardScope = "driver_id"
)

// DashboardStats is the per-role rollup computed on every dashboard fetch.
// It is never persisted.
type DashboardStats struct {
	TripStats      []TripStatusCount    `json:"trip_stats"`
	PaymentStats   []PaymentStatusCount `json:"payment_stats"`
	ThisMonthPaid  float64              `json:"this_month_paid"`
	TotalTrips     int64                `json:"total_trips"`
	ActiveTrips    int64                `json:"active_trips"`
	CompletedTrips int64                `json:"completed_trips"`
}

// DashboardRepository runs the grouped aggregations behind the rollups.
type DashboardRepository interface {
	// TripsByStatus groups trips matching scope=ownerID by status.
	TripsByStatus(ctx context.Context, scope DashboardScope, ownerID string) ([]TripStatusCount, error)
	// PaymentsByStatus groups payments matching scope=ownerID by status.
	// Payments carry no manager or driver reference; those scopes resolve
	// through the payment's trip.
	PaymentsByStatus(ctx context.Context, scope DashboardScope, ownerID string) ([]PaymentStatusCount, error)
	// PaidBetween sums completed payments whose payment_date falls in
	// [from, to), scoped the same way as PaymentsByStatus.
	PaidBetween(ctx context.Context, scope DashboardScope, ownerID string, from, to time.Time) (float64, error)
}

// DashboardService computes role-scoped rollups.
type DashboardService interface {
	Stats(ctx context.Context, role, actorID string) (*DashboardStats, error)
}

// ScopeForRole maps an authenticated role to its rollup foreign key.
func ScopeForRole(role string) (DashboardScope, bool) {
	switch role {
	case domain.RoleCompany:
		return ScopeCompany, true
	case domain.RoleManager:
		return ScopeManager, true
	case domain.RoleVehicleOwner:
		return ScopeVehicleOwner, true
	case domain.RoleDriver:
		return ScopeDriver, true
	}
	return "", false
}
