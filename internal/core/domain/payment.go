package domain

import (
	"errors"
	"time"
)

// PaymentStatus represents the lifecycle state of a recorded payment.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// paymentTransitions: completed, failed and cancelled are terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:    {PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentProcessing: {PaymentCompleted, PaymentFailed, PaymentCancelled},
}

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrVehicleOwnerNotFound = errors.New("vehicle owner not found")
)

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

// PaymentDueDays is how long after creation a payment falls due.
const PaymentDueDays = 7

// Payment records money changing hands for a trip. Payments are entered
// manually; nothing is auto-created when a trip completes.
type Payment struct {
	ID             string        `json:"id" bson:"_id"`
	TripID         string        `json:"trip_id" bson:"trip_id"`
	CompanyID      string        `json:"company_id" bson:"company_id"`
	VehicleOwnerID string        `json:"vehicle_owner_id" bson:"vehicle_owner_id"`
	Amount         float64       `json:"amount" bson:"amount"`
	ServiceCharge  float64       `json:"service_charge" bson:"service_charge"`
	TotalAmount    float64       `json:"total_amount" bson:"total_amount"`
	DueDate        time.Time     `json:"due_date" bson:"due_date"`
	PaymentDate    *time.Time    `json:"payment_date,omitempty" bson:"payment_date,omitempty"`
	TransactionID  string        `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	PaymentMethod  string        `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	Status         PaymentStatus `json:"status" bson:"status"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}
