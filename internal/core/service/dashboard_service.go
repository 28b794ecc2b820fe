package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// DashboardService computes per-role rollups over trips and payments. The
// rollup is recomputed on every fetch; nothing is cached or persisted.
type DashboardService struct {
	repo   ports.DashboardRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewDashboardService(repo ports.DashboardRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now, logger: logger}
}

// Stats computes the dashboard rollup for the given role-scoped owner.
func (s *DashboardService) Stats(ctx context.Context, role, actorID string) (*ports.DashboardStats, error) {
	scope, ok := ports.ScopeForRole(role)
	if !ok {
		return nil, domain.ErrForbidden
	}

	tripStats, err := s.repo.TripsByStatus(ctx, scope, actorID)
	if err != nil {
		s.logger.Error().Err(err).Str("role", role).Msg("failed to aggregate trips")
		return nil, err
	}

	paymentStats, err := s.repo.PaymentsByStatus(ctx, scope, actorID)
	if err != nil {
		s.logger.Error().Err(err).Str("role", role).Msg("failed to aggregate payments")
		return nil, err
	}

	from, to := monthBounds(s.now().UTC())
	monthPaid, err := s.repo.PaidBetween(ctx, scope, actorID, from, to)
	if err != nil {
		s.logger.Error().Err(err).Str("role", role).Msg("failed to sum month payments")
		return nil, err
	}

	stats := &ports.DashboardStats{
		TripStats:     tripStats,
		PaymentStats:  paymentStats,
		ThisMonthPaid: monthPaid,
	}

	active := make(map[domain.TripStatus]struct{}, len(domain.ActiveTripStatuses))
	for _, st := range domain.ActiveTripStatuses {
		active[st] = struct{}{}
	}
	for _, bucket := range tripStats {
		stats.TotalTrips += bucket.Count
		if _, ok := active[bucket.Status]; ok {
			stats.ActiveTrips += bucket.Count
		}
		if bucket.Status == domain.TripCompleted {
			stats.CompletedTrips += bucket.Count
		}
	}

	return stats, nil
}

// monthBounds returns the [start, end) range of the calendar month containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
