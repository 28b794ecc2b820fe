package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	events    []*domain.StatusEvent
	insertErr error
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.StatusEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *e
	r.events = append(r.events, &clone)
	return nil
}

type stubPartyRepo struct {
	companies map[string]ports.CompanyContact
	owners    map[string]struct{}
	drivers   map[string]struct{}
}

func newStubPartyRepo() *stubPartyRepo {
	return &stubPartyRepo{
		companies: make(map[string]ports.CompanyContact),
		owners:    make(map[string]struct{}),
		drivers:   make(map[string]struct{}),
	}
}

func (r *stubPartyRepo) CompanyExists(_ context.Context, id string) (bool, error) {
	_, ok := r.companies[id]
	return ok, nil
}

func (r *stubPartyRepo) VehicleOwnerExists(_ context.Context, id string) (bool, error) {
	_, ok := r.owners[id]
	return ok, nil
}

func (r *stubPartyRepo) DriverExists(_ context.Context, id string) (bool, error) {
	_, ok := r.drivers[id]
	return ok, nil
}

func (r *stubPartyRepo) CompanyContact(_ context.Context, id string) (*ports.CompanyContact, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := c
	return &clone, nil
}

type stubRequestRepo struct {
	byID      map[string]*domain.TransportRequest
	seq       int
	createErr error
	// trips created through AssignTrip, keyed by request id
	assigned map[string]*domain.Trip
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{
		byID:     make(map[string]*domain.TransportRequest),
		assigned: make(map[string]*domain.Trip),
	}
}

func (r *stubRequestRepo) Create(_ context.Context, req *domain.TransportRequest) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	req.ID = fmt.Sprintf("req_%d", r.seq)
	clone := *req
	r.byID[req.ID] = &clone
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string, companyID string) (*domain.TransportRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	// Enforce company filter (mirrors the real Mongo query)
	if companyID != "" && req.CompanyID != companyID {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRequestRepo) List(_ context.Context, f ports.ListRequestsFilter) ([]*domain.TransportRequest, int64, error) {
	var matched []*domain.TransportRequest
	for _, req := range r.byID {
		if f.CompanyID != "" && req.CompanyID != f.CompanyID {
			continue
		}
		if f.Status != "" && string(req.Status) != f.Status {
			continue
		}
		if f.Urgency != "" && string(req.Urgency) != f.Urgency {
			continue
		}
		clone := *req
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubRequestRepo) UpdateStatus(_ context.Context, id string, update ports.RequestStatusUpdate) error {
	req, ok := r.byID[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.Status = update.Status
	req.AdminNotes = update.AdminNotes
	if update.AssignedTripID != "" {
		req.AssignedTripID = update.AssignedTripID
	}
	req.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubRequestRepo) AssignTrip(_ context.Context, requestID string, trip *domain.Trip, adminNotes string) error {
	req, ok := r.byID[requestID]
	if !ok {
		return domain.ErrRequestNotFound
	}
	for _, existing := range r.assigned {
		if existing.TripNumber == trip.TripNumber {
			return domain.ErrDuplicateTrip
		}
	}
	trip.ID = "trip_for_" + requestID
	clone := *trip
	r.assigned[requestID] = &clone
	req.Status = domain.RequestAssigned
	req.AssignedTripID = trip.ID
	req.AdminNotes = adminNotes
	req.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubRequestRepo) Stats(_ context.Context) (*ports.RequestStats, error) {
	stats := &ports.RequestStats{}
	buckets := make(map[domain.RequestStatus]*ports.RequestStatusCount)
	for _, req := range r.byID {
		b, ok := buckets[req.Status]
		if !ok {
			b = &ports.RequestStatusCount{Status: req.Status}
			buckets[req.Status] = b
		}
		b.Count++
		b.EstimatedCostSum += req.EstimatedCost
		stats.TotalRequests++
		stats.TotalEstimatedCost += req.EstimatedCost
	}
	for _, b := range buckets {
		stats.ByStatus = append(stats.ByStatus, *b)
	}
	return stats, nil
}

type stubTripRepo struct {
	byID      map[string]*domain.Trip
	seq       int
	createErr error
}

func newStubTripRepo() *stubTripRepo {
	return &stubTripRepo{byID: make(map[string]*domain.Trip)}
}

func (r *stubTripRepo) Create(_ context.Context, t *domain.Trip) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	t.ID = fmt.Sprintf("trip_%d", r.seq)
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTripRepo) FindByID(_ context.Context, id string) (*domain.Trip, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTripNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTripRepo) FindByTripNumber(_ context.Context, tripNumber string) (*domain.Trip, error) {
	for _, t := range r.byID {
		if t.TripNumber == tripNumber {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTripNotFound
}

func (r *stubTripRepo) List(_ context.Context, f ports.ListTripsFilter) ([]*domain.Trip, int64, error) {
	var matched []*domain.Trip
	for _, t := range r.byID {
		if f.CompanyID != "" && t.CompanyID != f.CompanyID {
			continue
		}
		if f.VehicleOwnerID != "" && t.VehicleOwnerID != f.VehicleOwnerID {
			continue
		}
		if f.DriverID != "" && t.DriverID != f.DriverID {
			continue
		}
		if f.ManagerID != "" && t.ManagerID != f.ManagerID {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubTripRepo) UpdateStatus(_ context.Context, id string, status domain.TripStatus, startDate, actualDeliveryDate *time.Time) error {
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrTripNotFound
	}
	t.Status = status
	if startDate != nil {
		t.StartDate = startDate
	}
	if actualDeliveryDate != nil {
		t.ActualDeliveryDate = actualDeliveryDate
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubTripRepo) Update(_ context.Context, id string, patch ports.TripPatch, totalAmount float64) error {
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrTripNotFound
	}
	if patch.Route != nil {
		t.Route = *patch.Route
	}
	if patch.ManagerID != nil {
		t.ManagerID = *patch.ManagerID
	}
	if patch.EstimatedDeliveryDate != nil {
		t.EstimatedDeliveryDate = patch.EstimatedDeliveryDate
	}
	if patch.BaseAmount != nil {
		t.BaseAmount = *patch.BaseAmount
	}
	if patch.ServiceCharge != nil {
		t.ServiceCharge = *patch.ServiceCharge
	}
	t.TotalAmount = totalAmount
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubTripRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTripNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubTripRepo) Stats(_ context.Context) (*ports.TripStats, error) {
	stats := &ports.TripStats{}
	buckets := make(map[domain.TripStatus]*ports.TripStatusCount)
	var completedSum float64
	var completedCount int64
	for _, t := range r.byID {
		b, ok := buckets[t.Status]
		if !ok {
			b = &ports.TripStatusCount{Status: t.Status}
			buckets[t.Status] = b
		}
		b.Count++
		b.TotalAmount += t.TotalAmount
		stats.TotalTrips++
		stats.TotalRevenue += t.TotalAmount
		if t.Status == domain.TripCompleted {
			completedSum += t.TotalAmount
			completedCount++
		}
	}
	for _, b := range buckets {
		stats.ByStatus = append(stats.ByStatus, *b)
	}
	if completedCount > 0 {
		stats.CompletedAvgAmount = completedSum / float64(completedCount)
	}
	return stats, nil
}

type stubPaymentRepo struct {
	byID      map[string]*domain.Payment
	createErr error
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{byID: make(map[string]*domain.Payment)}
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPaymentRepo) List(_ context.Context, f ports.ListPaymentsFilter) ([]*domain.Payment, int64, error) {
	var matched []*domain.Payment
	for _, p := range r.byID {
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.CompanyID != "" && p.CompanyID != f.CompanyID {
			continue
		}
		if f.VehicleOwnerID != "" && p.VehicleOwnerID != f.VehicleOwnerID {
			continue
		}
		if f.TripID != "" && p.TripID != f.TripID {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubPaymentRepo) UpdateStatus(_ context.Context, id string, status domain.PaymentStatus, transactionID string, paymentDate *time.Time) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.Status = status
	if transactionID != "" {
		p.TransactionID = transactionID
	}
	if paymentDate != nil {
		p.PaymentDate = paymentDate
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubPaymentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPaymentRepo) CountByTrip(_ context.Context, tripID string) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.TripID == tripID {
			n++
		}
	}
	return n, nil
}

func (r *stubPaymentRepo) Stats(_ context.Context) (*ports.PaymentStats, error) {
	stats := &ports.PaymentStats{}
	buckets := make(map[domain.PaymentStatus]*ports.PaymentStatusCount)
	for _, p := range r.byID {
		b, ok := buckets[p.Status]
		if !ok {
			b = &ports.PaymentStatusCount{Status: p.Status}
			buckets[p.Status] = b
		}
		b.Count++
		b.TotalAmount += p.TotalAmount
		stats.TotalPayments++
		stats.TotalAmount += p.TotalAmount
	}
	for _, b := range buckets {
		stats.ByStatus = append(stats.ByStatus, *b)
	}
	if stats.TotalPayments > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalPayments)
	}
	return stats, nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
	markErr  error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(tripNumber, status string, ts time.Time) string {
	return strings.Join([]string{tripNumber, status, fmt.Sprint(ts.Unix())}, ":")
}

func (d *stubDedup) IsDuplicate(_ context.Context, tripNumber, status string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[d.key(tripNumber, status, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, tripNumber, status string, ts time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.seen[d.key(tripNumber, status, ts)] = true
	return nil
}
