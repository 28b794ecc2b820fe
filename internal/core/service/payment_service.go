package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// PaymentService implements the payment ledger. Payments are recorded
// manually; completing a trip never creates one.
type PaymentService struct {
	repo    ports.PaymentRepository
	trips   ports.TripRepository
	parties ports.PartyRepository
	events  ports.EventRepository
	logger  zerolog.Logger
}

func NewPaymentService(repo ports.PaymentRepository, trips ports.TripRepository, parties ports.PartyRepository, events ports.EventRepository, logger zerolog.Logger) *PaymentService {
	return &PaymentService{repo: repo, trips: trips, parties: parties, events: events, logger: logger}
}

// CreatePayment records a payment against a trip/company/vehicle-owner triple.
// The three existence checks run in a fixed order so the caller always learns
// about a missing trip first.
func (s *PaymentService) CreatePayment(ctx context.Context, input ports.CreatePaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	if _, err := s.trips.FindByID(ctx, input.TripID); err != nil {
		if errors.Is(err, domain.ErrTripNotFound) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}
	if ok, err := s.parties.CompanyExists(ctx, input.CompanyID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	if ok, err := s.parties.VehicleOwnerExists(ctx, input.VehicleOwnerID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrVehicleOwnerNotFound
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:             "PAY-" + uuid.NewString(),
		TripID:         input.TripID,
		CompanyID:      input.CompanyID,
		VehicleOwnerID: input.VehicleOwnerID,
		Amount:         input.Amount,
		ServiceCharge:  0,
		TotalAmount:    input.Amount,
		DueDate:        now.AddDate(0, 0, domain.PaymentDueDays),
		TransactionID:  input.TransactionID,
		PaymentMethod:  input.PaymentMethod,
		Status:         domain.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		s.logger.Error().Err(err).Str("trip_id", input.TripID).Msg("failed to create payment")
		return nil, err
	}

	s.logger.Info().
		Str("payment_id", payment.ID).
		Str("trip_id", payment.TripID).
		Float64("amount", payment.Amount).
		Msg("payment recorded")

	return payment, nil
}

// GetPayment retrieves a single payment, scoped to the caller's own rows for
// company and vehicle-owner roles.
func (s *PaymentService) GetPayment(ctx context.Context, id string, role, actorID string) (*domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleAdmin:
	case domain.RoleCompany:
		if payment.CompanyID != actorID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleVehicleOwner:
		if payment.VehicleOwnerID != actorID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}
	return payment, nil
}

// ListPayments returns a page of payments, scoped per role.
func (s *PaymentService) ListPayments(ctx context.Context, input ports.ListPaymentsInput) (*ports.ListPaymentsResult, error) {
	filter := ports.ListPaymentsFilter{
		Status: input.Status,
		TripID: input.TripID,
		Page:   normalizePage(input.Page),
		Limit:  normalizeLimit(input.Limit),
	}

	switch input.Role {
	case domain.RoleAdmin:
		filter.CompanyID = input.CompanyID
		filter.VehicleOwnerID = input.VehicleOwnerID
	case domain.RoleCompany:
		filter.CompanyID = input.ActorID
	case domain.RoleVehicleOwner:
		filter.VehicleOwnerID = input.ActorID
	default:
		return nil, domain.ErrForbidden
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list payments")
		return nil, err
	}

	return &ports.ListPaymentsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// UpdatePaymentStatus transitions a payment. Completing stamps payment_date.
func (s *PaymentService) UpdatePaymentStatus(ctx context.Context, input ports.UpdatePaymentStatusInput) (*domain.Payment, error) {
	newStatus := domain.PaymentStatus(input.Status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, input.Status)
	}

	payment, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, payment.Status, newStatus)
	}

	var paymentDate *time.Time
	if newStatus == domain.PaymentCompleted {
		now := time.Now().UTC()
		paymentDate = &now
	}

	if err := s.repo.UpdateStatus(ctx, input.ID, newStatus, input.TransactionID, paymentDate); err != nil {
		s.logger.Error().Err(err).Str("payment_id", input.ID).Msg("failed to update payment status")
		return nil, err
	}

	event := &domain.StatusEvent{
		EntityType: domain.EntityPayment,
		EntityID:   payment.ID,
		FromStatus: string(payment.Status),
		ToStatus:   string(newStatus),
		Source:     "api",
		Timestamp:  time.Now().UTC(),
	}
	if err := s.events.Insert(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("payment_id", payment.ID).Msg("failed to insert audit event")
	}

	return s.repo.FindByID(ctx, input.ID)
}

// DeletePayment removes a payment record.
func (s *PaymentService) DeletePayment(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("payment_id", id).Msg("failed to delete payment")
		return err
	}
	return nil
}

// PaymentStats returns grouped counts and sums.
func (s *PaymentService) PaymentStats(ctx context.Context) (*ports.PaymentStats, error) {
	return s.repo.Stats(ctx)
}
