package ports

import (
	"context"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// CreatePaymentInput carries all data for manually recording a payment.
type CreatePaymentInput struct {
	TripID         string
	CompanyID      string
	VehicleOwnerID string
	Amount         float64
	PaymentMethod  string
	TransactionID  string
}

// UpdatePaymentStatusInput carries a status transition for a payment.
type UpdatePaymentStatusInput struct {
	ID            string
	Status        string
	TransactionID string
}

// ListPaymentsInput carries all parameters for the payment list endpoint.
type ListPaymentsInput struct {
	Role           string
	ActorID        string
	Status         string
	CompanyID      string // admin-only filters
	VehicleOwnerID string
	TripID         string
	Page           int
	Limit          int
}

// ListPaymentsResult is returned by ListPayments.
type ListPaymentsResult struct {
	Items      []*domain.Payment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PaymentService defines use-case operations for the payment ledger.
type PaymentService interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error)
	GetPayment(ctx context.Context, id string, role, actorID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, input ListPaymentsInput) (*ListPaymentsResult, error)
	UpdatePaymentStatus(ctx context.Context, input UpdatePaymentStatusInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) error
	PaymentStats(ctx context.Context) (*PaymentStats, error)
}
