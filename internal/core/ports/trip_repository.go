package ports

import (
	"context"
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// ListTripsFilter carries all query parameters for listing trips. Exactly one
// of the owner fields is set for non-admin callers (role scoping).
type ListTripsFilter struct {
	CompanyID      string
	VehicleOwnerID string
	DriverID       string
	ManagerID      string
	Status         string
	Page           int
	Limit          int
}

// TripPatch carries the optional fields of a partial trip update. Nil means
// "leave unchanged".
type TripPatch struct {
	Route                 *string
	ManagerID             *string
	EstimatedDeliveryDate *time.Time
	BaseAmount            *float64
	ServiceCharge         *float64
}

// TripStatusCount is one bucket of the grouped trip statistics.
type TripStatusCount struct {
	Status      domain.TripStatus `json:"status" bson:"_id"`
	Count       int64             `json:"count" bson:"count"`
	TotalAmount float64           `json:"total_amount" bson:"total_amount"`
}

// TripStats is the aggregate view over all trips.
type TripStats struct {
	ByStatus           []TripStatusCount `json:"by_status"`
	TotalTrips         int64             `json:"total_trips"`
	TotalRevenue       float64           `json:"total_revenue"`
	CompletedAvgAmount float64           `json:"completed_avg_amount"`
}

// TripRepository defines persistence operations for trips.
type TripRepository interface {
	Create(ctx context.Context, t *domain.Trip) error
	FindByID(ctx context.Context, id string) (*domain.Trip, error)
	FindByTripNumber(ctx context.Context, tripNumber string) (*domain.Trip, error)
	List(ctx context.Context, filter ListTripsFilter) ([]*domain.Trip, int64, error)
	// UpdateStatus sets the new status together with any derived timestamps.
	UpdateStatus(ctx context.Context, id string, status domain.TripStatus, startDate, actualDeliveryDate *time.Time) error
	// Update applies a partial patch. total_amount is always recomputed by the
	// service before calling; the repo persists what it is given.
	Update(ctx context.Context, id string, patch TripPatch, totalAmount float64) error
	Delete(ctx context.Context, id string) error
	// Stats returns grouped counts and amount sums, plus the average amount of
	// completed trips.
	Stats(ctx context.Context) (*TripStats, error)
}
