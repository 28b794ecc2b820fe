package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
	"github.com/petrohaul/transport-system/internal/core/pricing"
)

// RequestService implements the transport request lifecycle.
type RequestService struct {
	repo    ports.RequestRepository
	parties ports.PartyRepository
	events  ports.EventRepository
	logger  zerolog.Logger
}

func NewRequestService(repo ports.RequestRepository, parties ports.PartyRepository, events ports.EventRepository, logger zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, parties: parties, events: events, logger: logger}
}

// CreateRequest creates a new transport request in status pending. The cost
// estimate is computed once here and never recomputed afterwards.
func (s *RequestService) CreateRequest(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestResult, error) {
	contact, err := s.parties.CompanyContact(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.TransportRequest{
		RequestNumber:       generateRequestNumber(now),
		CompanyID:           input.CompanyID,
		MaterialType:        input.MaterialType,
		Quantity:            input.Quantity,
		QuantityUnit:        domain.QuantityUnit(input.QuantityUnit),
		PickupLocation:      input.PickupLocation,
		DropLocation:        input.DropLocation,
		PreferredDate:       input.PreferredDate,
		Urgency:             domain.Urgency(input.Urgency),
		SpecialInstructions: input.SpecialInstructions,
		ContactPerson:       input.ContactPerson,
		ContactPhone:        input.ContactPhone,
		TemperatureControl:  input.TemperatureControl,
		HazardousMaterial:   input.HazardousMaterial,
		InsuranceRequired:   input.InsuranceRequired,
		VehicleType:         input.VehicleType,
		EstimatedBudget:     input.EstimatedBudget,
		Status:              domain.RequestPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	req.EstimatedCost = pricing.Estimate(pricing.Input{
		Quantity:           req.Quantity,
		QuantityUnit:       req.QuantityUnit,
		Urgency:            req.Urgency,
		VehicleType:        req.VehicleType,
		TemperatureControl: req.TemperatureControl,
		HazardousMaterial:  req.HazardousMaterial,
		InsuranceRequired:  req.InsuranceRequired,
	})

	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Error().Err(err).Msg("failed to create transport request")
		return nil, err
	}

	s.logger.Info().
		Str("request_number", req.RequestNumber).
		Str("company_id", req.CompanyID).
		Int64("estimated_cost", req.EstimatedCost).
		Msg("transport request created")

	return &ports.RequestResult{
		Request:      req,
		CompanyName:  contact.Name,
		CompanyEmail: contact.Email,
	}, nil
}

// GetRequest retrieves a single request. Company users only see their own rows.
func (s *RequestService) GetRequest(ctx context.Context, input ports.GetRequestInput) (*domain.TransportRequest, error) {
	companyScope := ""
	switch input.Role {
	case domain.RoleAdmin:
	case domain.RoleCompany:
		companyScope = input.ActorID
	default:
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, input.ID, companyScope)
}

// ListRequests returns a page of requests. Company users are always scoped to
// their own company id regardless of the filters they send.
func (s *RequestService) ListRequests(ctx context.Context, input ports.ListRequestsInput) (*ports.ListRequestsResult, error) {
	filter := ports.ListRequestsFilter{
		Status:  input.Status,
		Urgency: input.Urgency,
		Page:    normalizePage(input.Page),
		Limit:   normalizeLimit(input.Limit),
	}

	switch input.Role {
	case domain.RoleAdmin:
		filter.CompanyID = input.CompanyID
	case domain.RoleCompany:
		filter.CompanyID = input.ActorID
	default:
		return nil, domain.ErrForbidden
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list transport requests")
		return nil, err
	}

	return &ports.ListRequestsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// UpdateRequestStatus transitions a request. Transitions are validated against
// the lifecycle table unless Force is set (admin override). A trip may only be
// linked while moving into a linked status.
func (s *RequestService) UpdateRequestStatus(ctx context.Context, input ports.UpdateRequestStatusInput) (*domain.TransportRequest, error) {
	newStatus := domain.RequestStatus(input.Status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, input.Status)
	}

	req, err := s.repo.FindByID(ctx, input.ID, "")
	if err != nil {
		return nil, err
	}

	if !input.Force && !req.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, req.Status, newStatus)
	}
	if input.AssignedTripID != "" && !newStatus.AllowsTripLink() {
		return nil, fmt.Errorf("%w: status %s cannot carry a trip link", domain.ErrInvalidTransition, newStatus)
	}

	update := ports.RequestStatusUpdate{
		Status:         newStatus,
		AdminNotes:     input.AdminNotes,
		AssignedTripID: input.AssignedTripID,
	}
	if err := s.repo.UpdateStatus(ctx, input.ID, update); err != nil {
		s.logger.Error().Err(err).Str("request_id", input.ID).Msg("failed to update request status")
		return nil, err
	}

	s.audit(ctx, req, newStatus)

	return s.repo.FindByID(ctx, input.ID, "")
}

// AssignRequest approves a request into a trip: the trip is created and the
// request is linked and moved to assigned in one unit of work, so a partial
// failure cannot leave an orphaned link.
func (s *RequestService) AssignRequest(ctx context.Context, input ports.AssignRequestInput) (*domain.Trip, error) {
	req, err := s.repo.FindByID(ctx, input.RequestID, "")
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(domain.RequestAssigned) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, req.Status, domain.RequestAssigned)
	}

	trip, err := buildTrip(input.Trip)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AssignTrip(ctx, input.RequestID, trip, input.AdminNotes); err != nil {
		s.logger.Error().Err(err).Str("request_id", input.RequestID).Msg("failed to assign trip to request")
		return nil, err
	}

	s.audit(ctx, req, domain.RequestAssigned)
	s.logger.Info().
		Str("request_number", req.RequestNumber).
		Str("trip_number", trip.TripNumber).
		Msg("request assigned to trip")

	return trip, nil
}

// RequestStats returns grouped counts and estimated-cost sums.
func (s *RequestService) RequestStats(ctx context.Context) (*ports.RequestStats, error) {
	return s.repo.Stats(ctx)
}

// audit records the transition in the status_events trail. Failures are logged,
// never surfaced: the transition itself already succeeded.
func (s *RequestService) audit(ctx context.Context, req *domain.TransportRequest, to domain.RequestStatus) {
	event := &domain.StatusEvent{
		EntityType: domain.EntityRequest,
		EntityID:   req.ID,
		FromStatus: string(req.Status),
		ToStatus:   string(to),
		Source:     "api",
		Timestamp:  time.Now().UTC(),
	}
	if err := s.events.Insert(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("request_id", req.ID).Msg("failed to insert audit event")
	}
}

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateRequestNumber returns a number in the format REQ-<epoch_ms>-<XXXXX>.
func generateRequestNumber(now time.Time) string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive suffix from the clock
		return fmt.Sprintf("REQ-%d-%05d", now.UnixMilli(), now.Nanosecond()%100000)
	}
	for i := range b {
		b[i] = base36Upper[int(b[i])%len(base36Upper)]
	}
	return fmt.Sprintf("REQ-%d-%s", now.UnixMilli(), b)
}
