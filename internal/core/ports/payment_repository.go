package ports

import (
	"context"
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// ListPaymentsFilter carries all query parameters for listing payments.
type ListPaymentsFilter struct {
	Status         string
	CompanyID      string
	VehicleOwnerID string
	TripID         string
	Page           int
	Limit          int
}

// PaymentStatusCount is one bucket of the grouped payment statistics.
type PaymentStatusCount struct {
	Status      domain.PaymentStatus `json:"status" bson:"_id"`
	Count       int64                `json:"count" bson:"count"`
	TotalAmount float64              `json:"total_amount" bson:"total_amount"`
}

// PaymentStats is the aggregate view over all payments.
type PaymentStats struct {
	ByStatus      []PaymentStatusCount `json:"by_status"`
	TotalPayments int64                `json:"total_payments"`
	TotalAmount   float64              `json:"total_amount"`
	AverageAmount float64              `json:"average_amount"`
}

// PaymentRepository defines persistence operations for the payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context, filter ListPaymentsFilter) ([]*domain.Payment, int64, error)
	// UpdateStatus sets the new status, the optional transaction id, and the
	// payment date when the transition completes the payment.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, transactionID string, paymentDate *time.Time) error
	Delete(ctx context.Context, id string) error
	// CountByTrip reports how many payments reference the given trip. Used by
	// the trip delete guard.
	CountByTrip(ctx context.Context, tripID string) (int64, error)
	Stats(ctx context.Context) (*PaymentStats, error)
}
