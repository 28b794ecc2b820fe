package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, tripNumber, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, tripNumber, status string, ts time.Time) error
}

type tripEventService struct {
	trips  ports.TripRepository
	events ports.EventRepository
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewTripEventService returns a TripEventService implementation. Events come
// from the driver app and carry a trip number rather than an internal id.
func NewTripEventService(
	trips ports.TripRepository,
	events ports.EventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.TripEventService {
	return &tripEventService{
		trips:  trips,
		events: events,
		dedup:  dedup,
		log:    log,
	}
}

// Process validates, deduplicates, and applies a single trip status event.
func (s *tripEventService) Process(ctx context.Context, in ports.TripEventInput) error {
	newStatus := domain.TripStatus(in.Status)

	// 1. Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.TripNumber, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("trip_number", in.TripNumber).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("trip_number", in.TripNumber).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	// 2. Find the trip.
	trip, err := s.trips.FindByTripNumber(ctx, in.TripNumber)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	// 3. Validate the state machine transition. Driver events never force.
	if !trip.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, trip.Status, newStatus)
	}

	// 4. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.TripNumber, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("trip_number", in.TripNumber).Msg("failed to set dedup key")
	}

	// 5. Apply the transition with its derived timestamps.
	var startDate, actualDeliveryDate *time.Time
	now := time.Now().UTC()
	switch newStatus {
	case domain.TripInTransit:
		startDate = &now
	case domain.TripCompleted:
		actualDeliveryDate = &now
	}
	if err := s.trips.UpdateStatus(ctx, trip.ID, newStatus, startDate, actualDeliveryDate); err != nil {
		return fmt.Errorf("process event: update status: %w", err)
	}

	// 6. Audit trail (non-fatal on failure).
	var loc *domain.Coordinates
	if in.Location != nil {
		loc = &domain.Coordinates{Lat: in.Location.Lat, Lng: in.Location.Lng}
	}
	auditEvent := &domain.StatusEvent{
		EntityType: domain.EntityTrip,
		EntityID:   trip.ID,
		FromStatus: string(trip.Status),
		ToStatus:   string(newStatus),
		Source:     in.Source,
		Timestamp:  in.Timestamp,
		Location:   loc,
	}
	if err := s.events.Insert(ctx, auditEvent); err != nil {
		s.log.Warn().Err(err).Str("trip_number", in.TripNumber).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("trip_number", in.TripNumber).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("trip event processed")

	return nil
}
