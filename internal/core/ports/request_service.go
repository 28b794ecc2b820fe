package ports

import (
	"context"
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// CreateRequestInput carries all data needed to create a transport request.
type CreateRequestInput struct {
	CompanyID           string
	MaterialType        string
	Quantity            float64
	QuantityUnit        string
	PickupLocation      string
	DropLocation        string
	PreferredDate       time.Time
	Urgency             string
	SpecialInstructions string
	ContactPerson       string
	ContactPhone        string
	TemperatureControl  bool
	HazardousMaterial   bool
	InsuranceRequired   bool
	VehicleType         string
	EstimatedBudget     float64
}

// RequestResult is returned after creating a request. Company contact details
// are joined in so the caller does not need a second lookup.
type RequestResult struct {
	Request      *domain.TransportRequest
	CompanyName  string
	CompanyEmail string
}

// UpdateRequestStatusInput carries a status transition for a request.
type UpdateRequestStatusInput struct {
	ID             string
	Status         string
	AdminNotes     string
	AssignedTripID string
	// Force skips transition-table validation. Reserved for admin overrides.
	Force bool
}

// GetRequestInput carries the parameters for retrieving a single request.
type GetRequestInput struct {
	ID      string
	Role    string
	ActorID string
}

// ListRequestsInput carries all parameters for the list endpoint.
type ListRequestsInput struct {
	Role      string
	ActorID   string
	Status    string
	Urgency   string
	CompanyID string // admin-only filter
	Page      int
	Limit     int
}

// ListRequestsResult is returned by ListRequests.
type ListRequestsResult struct {
	Items      []*domain.TransportRequest
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AssignRequestInput approves a request into a trip: the trip is created and
// linked in one unit of work.
type AssignRequestInput struct {
	RequestID  string
	AdminNotes string
	Trip       CreateTripInput
}

// RequestService defines use-case operations for the transport request lifecycle.
type RequestService interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*RequestResult, error)
	GetRequest(ctx context.Context, input GetRequestInput) (*domain.TransportRequest, error)
	ListRequests(ctx context.Context, input ListRequestsInput) (*ListRequestsResult, error)
	UpdateRequestStatus(ctx context.Context, input UpdateRequestStatusInput) (*domain.TransportRequest, error)
	AssignRequest(ctx context.Context, input AssignRequestInput) (*domain.Trip, error)
	RequestStats(ctx context.Context) (*RequestStats, error)
}
