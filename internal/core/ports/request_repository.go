package ports

import (
	"context"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// ListRequestsFilter carries all query parameters for listing transport requests.
// CompanyID is enforced by the service layer for company-role callers.
type ListRequestsFilter struct {
	CompanyID string // empty = no filter (admin); non-empty = scoped to company
	Status    string // optional: filter by request status
	Urgency   string // optional: filter by urgency
	Page      int    // 1-based
	Limit     int    // max rows per page (capped at 100 by service)
}

// RequestStatusUpdate carries the fields written by a status transition.
type RequestStatusUpdate struct {
	Status         domain.RequestStatus
	AdminNotes     string
	AssignedTripID string // empty = leave unchanged
}

// RequestStatusCount is one bucket of the grouped request statistics.
type RequestStatusCount struct {
	Status           domain.RequestStatus `json:"status" bson:"_id"`
	Count            int64                `json:"count" bson:"count"`
	EstimatedCostSum int64                `json:"estimated_cost_sum" bson:"estimated_cost_sum"`
}

// RequestUrgencyCount is one bucket of the urgency breakdown.
type RequestUrgencyCount struct {
	Urgency domain.Urgency `json:"urgency" bson:"_id"`
	Count   int64          `json:"count" bson:"count"`
}

// RequestStats is the aggregate view over all transport requests.
type RequestStats struct {
	ByStatus           []RequestStatusCount  `json:"by_status"`
	ByUrgency          []RequestUrgencyCount `json:"by_urgency"`
	TotalRequests      int64                 `json:"total_requests"`
	TotalEstimatedCost int64                 `json:"total_estimated_cost"`
}

// RequestRepository defines persistence operations for transport requests.
// Requests are never deleted; the collection is the audit trail.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.TransportRequest) error
	// FindByID retrieves a request. When companyID is non-empty, the query is
	// additionally filtered by company_id (role scoping).
	FindByID(ctx context.Context, id string, companyID string) (*domain.TransportRequest, error)
	// List returns a page of requests matching filter, newest first, and the total count.
	List(ctx context.Context, filter ListRequestsFilter) ([]*domain.TransportRequest, int64, error)
	// UpdateStatus applies a status transition to the request.
	UpdateStatus(ctx context.Context, id string, update RequestStatusUpdate) error
	// AssignTrip creates the trip and links it to the request (status=assigned)
	// inside a single transaction, so a partial failure cannot leave an
	// approved request pointing at a trip that was never created.
	AssignTrip(ctx context.Context, requestID string, trip *domain.Trip, adminNotes string) error
	// Stats returns grouped counts and estimated-cost sums.
	Stats(ctx context.Context) (*RequestStats, error)
}
