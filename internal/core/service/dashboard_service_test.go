package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

type stubDashboardRepo struct {
	trips    []ports.TripStatusCount
	payments []ports.PaymentStatusCount
	paid     float64

	lastScope   ports.DashboardScope
	lastOwnerID string
	lastFrom    time.Time
	lastTo      time.Time

	tripsErr error
}

func (r *stubDashboardRepo) TripsByStatus(_ context.Context, scope ports.DashboardScope, ownerID string) ([]ports.TripStatusCount, error) {
	if r.tripsErr != nil {
		return nil, r.tripsErr
	}
	r.lastScope = scope
	r.lastOwnerID = ownerID
	return r.trips, nil
}

func (r *stubDashboardRepo) PaymentsByStatus(_ context.Context, _ ports.DashboardScope, _ string) ([]ports.PaymentStatusCount, error) {
	return r.payments, nil
}

func (r *stubDashboardRepo) PaidBetween(_ context.Context, _ ports.DashboardScope, _ string, from, to time.Time) (float64, error) {
	r.lastFrom = from
	r.lastTo = to
	return r.paid, nil
}

func TestDashboardService_Stats_Rollup(t *testing.T) {
	repo := &stubDashboardRepo{
		trips: []ports.TripStatusCount{
			{Status: domain.TripPending, Count: 2},
			{Status: domain.TripInTransit, Count: 1},
			{Status: domain.TripCompleted, Count: 1},
		},
		payments: []ports.PaymentStatusCount{
			{Status: domain.PaymentPending, Count: 1, TotalAmount: 4000},
			{Status: domain.PaymentCompleted, Count: 2, TotalAmount: 11000},
		},
		paid: 11000,
	}
	svc := NewDashboardService(repo, discardLogger)

	stats, err := svc.Stats(context.Background(), domain.RoleCompany, "company_1")
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalTrips)
	// pending is not an active status; only in_transit counts here.
	assert.Equal(t, int64(1), stats.ActiveTrips)
	assert.Equal(t, int64(1), stats.CompletedTrips)
	assert.Equal(t, 11000.0, stats.ThisMonthPaid)
	assert.Len(t, stats.PaymentStats, 2)

	assert.Equal(t, ports.ScopeCompany, repo.lastScope)
	assert.Equal(t, "company_1", repo.lastOwnerID)
}

func TestDashboardService_Stats_ActiveStatuses(t *testing.T) {
	repo := &stubDashboardRepo{
		trips: []ports.TripStatusCount{
			{Status: domain.TripConfirmed, Count: 1},
			{Status: domain.TripVehicleAssigned, Count: 1},
			{Status: domain.TripDriverAssigned, Count: 1},
			{Status: domain.TripInTransit, Count: 1},
			{Status: domain.TripCancelled, Count: 3},
		},
	}
	svc := NewDashboardService(repo, discardLogger)

	stats, err := svc.Stats(context.Background(), domain.RoleDriver, "driver_1")
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.ActiveTrips)
	assert.Equal(t, int64(7), stats.TotalTrips)
	assert.Equal(t, int64(0), stats.CompletedTrips)
}

func TestDashboardService_Stats_MonthWindow(t *testing.T) {
	repo := &stubDashboardRepo{}
	svc := NewDashboardService(repo, discardLogger)
	svc.now = func() time.Time {
		return time.Date(2024, time.February, 17, 14, 30, 0, 0, time.UTC)
	}

	_, err := svc.Stats(context.Background(), domain.RoleVehicleOwner, "owner_1")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	// Leap year: the exclusive bound is March 1st, covering February 29th.
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), repo.lastTo)
}

func TestDashboardService_Stats_ScopePerRole(t *testing.T) {
	tests := []struct {
		role string
		want ports.DashboardScope
	}{
		{domain.RoleCompany, ports.ScopeCompany},
		{domain.RoleManager, ports.ScopeManager},
		{domain.RoleVehicleOwner, ports.ScopeVehicleOwner},
		{domain.RoleDriver, ports.ScopeDriver},
	}
	for _, tt := range tests {
		repo := &stubDashboardRepo{}
		svc := NewDashboardService(repo, discardLogger)
		_, err := svc.Stats(context.Background(), tt.role, "actor_1")
		require.NoError(t, err, tt.role)
		assert.Equal(t, tt.want, repo.lastScope, tt.role)
	}
}

func TestDashboardService_Stats_UnknownRole(t *testing.T) {
	svc := NewDashboardService(&stubDashboardRepo{}, discardLogger)

	_, err := svc.Stats(context.Background(), domain.RoleAdmin, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Stats(context.Background(), "auditor", "x")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDashboardService_Stats_RepoError(t *testing.T) {
	repo := &stubDashboardRepo{tripsErr: errors.New("aggregation failed")}
	svc := NewDashboardService(repo, discardLogger)

	_, err := svc.Stats(context.Background(), domain.RoleCompany, "company_1")
	assert.Error(t, err)
}
