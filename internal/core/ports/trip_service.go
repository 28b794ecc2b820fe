package ports

import (
	"context"
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// CreateTripInput carries all data needed to create a trip.
type CreateTripInput struct {
	TripNumber            string
	CompanyID             string
	VehicleOwnerID        string
	DriverID              string
	ManagerID             string
	Route                 string
	EstimatedDeliveryDate *time.Time
	BaseAmount            float64
	ServiceCharge         float64
}

// UpdateTripStatusInput carries a status transition for a trip.
type UpdateTripStatusInput struct {
	ID     string
	Status string
	// Force skips transition-table validation. Reserved for admin overrides.
	Force bool
}

// UpdateTripInput is a partial field-level patch.
type UpdateTripInput struct {
	ID    string
	Patch TripPatch
}

// GetTripInput carries the parameters for retrieving a single trip.
type GetTripInput struct {
	ID      string
	Role    string
	ActorID string
}

// ListTripsInput carries all parameters for the trip list endpoint.
type ListTripsInput struct {
	Role           string
	ActorID        string
	Status         string
	CompanyID      string // admin-only filters
	VehicleOwnerID string
	DriverID       string
	Page           int
	Limit          int
}

// ListTripsResult is returned by ListTrips.
type ListTripsResult struct {
	Items      []*domain.Trip
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TripService defines use-case operations for the trip state machine.
type TripService interface {
	CreateTrip(ctx context.Context, input CreateTripInput) (*domain.Trip, error)
	GetTrip(ctx context.Context, input GetTripInput) (*domain.Trip, error)
	ListTrips(ctx context.Context, input ListTripsInput) (*ListTripsResult, error)
	UpdateTripStatus(ctx context.Context, input UpdateTripStatusInput) (*domain.Trip, error)
	UpdateTrip(ctx context.Context, input UpdateTripInput) (*domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	TripStats(ctx context.Context) (*TripStats, error)
}
