package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// TripService implements the trip state machine.
type TripService struct {
	repo     ports.TripRepository
	payments ports.PaymentRepository
	events   ports.EventRepository
	logger   zerolog.Logger
}

func NewTripService(repo ports.TripRepository, payments ports.PaymentRepository, events ports.EventRepository, logger zerolog.Logger) *TripService {
	return &TripService{repo: repo, payments: payments, events: events, logger: logger}
}

// buildTrip validates required trip fields and constructs a pending trip with
// the derived total. Shared by direct creation and request assignment.
func buildTrip(input ports.CreateTripInput) (*domain.Trip, error) {
	if input.TripNumber == "" || input.CompanyID == "" || input.VehicleOwnerID == "" ||
		input.DriverID == "" || input.Route == "" {
		return nil, errors.New("trip_number, company_id, vehicle_owner_id, driver_id and route are required")
	}

	now := time.Now().UTC()
	return &domain.Trip{
		TripNumber:            input.TripNumber,
		CompanyID:             input.CompanyID,
		VehicleOwnerID:        input.VehicleOwnerID,
		DriverID:              input.DriverID,
		ManagerID:             input.ManagerID,
		Route:                 input.Route,
		EstimatedDeliveryDate: input.EstimatedDeliveryDate,
		BaseAmount:            input.BaseAmount,
		ServiceCharge:         input.ServiceCharge,
		TotalAmount:           domain.TripTotal(input.BaseAmount, input.ServiceCharge),
		Status:                domain.TripPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// CreateTrip creates a trip in status pending. Duplicate trip numbers are
// rejected before insert; the unique index backs this up under concurrency.
func (s *TripService) CreateTrip(ctx context.Context, input ports.CreateTripInput) (*domain.Trip, error) {
	trip, err := buildTrip(input)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByTripNumber(ctx, input.TripNumber); err == nil && existing != nil {
		return nil, domain.ErrDuplicateTrip
	} else if err != nil && !errors.Is(err, domain.ErrTripNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, trip); err != nil {
		s.logger.Error().Err(err).Str("trip_number", trip.TripNumber).Msg("failed to create trip")
		return nil, err
	}

	s.logger.Info().Str("trip_number", trip.TripNumber).Str("company_id", trip.CompanyID).Msg("trip created")
	return trip, nil
}

// GetTrip retrieves a single trip, enforcing role scoping: non-admin callers
// only see trips tied to their own identifier.
func (s *TripService) GetTrip(ctx context.Context, input ports.GetTripInput) (*domain.Trip, error) {
	trip, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !tripVisibleTo(trip, input.Role, input.ActorID) {
		return nil, domain.ErrForbidden
	}
	return trip, nil
}

func tripVisibleTo(trip *domain.Trip, role, actorID string) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCompany:
		return trip.CompanyID == actorID
	case domain.RoleManager:
		return trip.ManagerID == actorID
	case domain.RoleVehicleOwner:
		return trip.VehicleOwnerID == actorID
	case domain.RoleDriver:
		return trip.DriverID == actorID
	}
	return false
}

// ListTrips returns a page of trips. Non-admin callers are scoped to their own
// foreign key; the admin-only filters are ignored for them.
func (s *TripService) ListTrips(ctx context.Context, input ports.ListTripsInput) (*ports.ListTripsResult, error) {
	filter := ports.ListTripsFilter{
		Status: input.Status,
		Page:   normalizePage(input.Page),
		Limit:  normalizeLimit(input.Limit),
	}

	switch input.Role {
	case domain.RoleAdmin:
		filter.CompanyID = input.CompanyID
		filter.VehicleOwnerID = input.VehicleOwnerID
		filter.DriverID = input.DriverID
	case domain.RoleCompany:
		filter.CompanyID = input.ActorID
	case domain.RoleManager:
		filter.ManagerID = input.ActorID
	case domain.RoleVehicleOwner:
		filter.VehicleOwnerID = input.ActorID
	case domain.RoleDriver:
		filter.DriverID = input.ActorID
	default:
		return nil, domain.ErrForbidden
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list trips")
		return nil, err
	}

	return &ports.ListTripsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// UpdateTripStatus transitions a trip. Entering in_transit stamps start_date;
// entering completed stamps actual_delivery_date. Transitions are validated
// against the state machine unless Force is set.
func (s *TripService) UpdateTripStatus(ctx context.Context, input ports.UpdateTripStatusInput) (*domain.Trip, error) {
	newStatus := domain.TripStatus(input.Status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, input.Status)
	}

	trip, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !input.Force && !trip.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, trip.Status, newStatus)
	}

	var startDate, actualDeliveryDate *time.Time
	now := time.Now().UTC()
	switch newStatus {
	case domain.TripInTransit:
		startDate = &now
	case domain.TripCompleted:
		actualDeliveryDate = &now
	}

	if err := s.repo.UpdateStatus(ctx, input.ID, newStatus, startDate, actualDeliveryDate); err != nil {
		s.logger.Error().Err(err).Str("trip_id", input.ID).Msg("failed to update trip status")
		return nil, err
	}

	s.auditTrip(ctx, trip, newStatus, "api", nil)

	return s.repo.FindByID(ctx, input.ID)
}

// UpdateTrip applies a partial patch. The total is re-derived from the merged
// base amount and service charge, so a patch can never break the invariant.
func (s *TripService) UpdateTrip(ctx context.Context, input ports.UpdateTripInput) (*domain.Trip, error) {
	trip, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	base := trip.BaseAmount
	charge := trip.ServiceCharge
	if input.Patch.BaseAmount != nil {
		base = *input.Patch.BaseAmount
	}
	if input.Patch.ServiceCharge != nil {
		charge = *input.Patch.ServiceCharge
	}

	if err := s.repo.Update(ctx, input.ID, input.Patch, domain.TripTotal(base, charge)); err != nil {
		s.logger.Error().Err(err).Str("trip_id", input.ID).Msg("failed to update trip")
		return nil, err
	}

	return s.repo.FindByID(ctx, input.ID)
}

// DeleteTrip removes a trip. Trips with recorded payments cannot be deleted;
// the same guard the company and vehicle-owner entities get.
func (s *TripService) DeleteTrip(ctx context.Context, id string) error {
	trip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.payments.CountByTrip(ctx, trip.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrTripHasPayments
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("trip_id", id).Msg("failed to delete trip")
		return err
	}
	s.logger.Info().Str("trip_number", trip.TripNumber).Msg("trip deleted")
	return nil
}

// TripStats returns grouped counts and revenue sums.
func (s *TripService) TripStats(ctx context.Context) (*ports.TripStats, error) {
	return s.repo.Stats(ctx)
}

func (s *TripService) auditTrip(ctx context.Context, trip *domain.Trip, to domain.TripStatus, source string, loc *domain.Coordinates) {
	event := &domain.StatusEvent{
		EntityType: domain.EntityTrip,
		EntityID:   trip.ID,
		FromStatus: string(trip.Status),
		ToStatus:   string(to),
		Source:     source,
		Timestamp:  time.Now().UTC(),
		Location:   loc,
	}
	if err := s.events.Insert(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("trip_id", trip.ID).Msg("failed to insert audit event")
	}
}
