package domain

import (
	"errors"
	"time"
)

// TripStatus represents the lifecycle state of a trip.
type TripStatus string

const (
	TripPending         TripStatus = "pending"
	TripConfirmed       TripStatus = "confirmed"
	TripVehicleAssigned TripStatus = "vehicle_assigned"
	TripDriverAssigned  TripStatus = "driver_assigned"
	TripInTransit       TripStatus = "in_transit"
	TripCompleted       TripStatus = "completed"
	TripCancelled       TripStatus = "cancelled"
)

// tripTransitions encodes the monotonic progression; cancelled is reachable
// from every non-terminal state.
var tripTransitions = map[TripStatus][]TripStatus{
	TripPending:         {TripConfirmed, TripCancelled},
	TripConfirmed:       {TripVehicleAssigned, TripCancelled},
	TripVehicleAssigned: {TripDriverAssigned, TripCancelled},
	TripDriverAssigned:  {TripInTransit, TripCancelled},
	TripInTransit:       {TripCompleted, TripCancelled},
}

var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrDuplicateTrip     = errors.New("trip number already exists")
	ErrTripHasPayments   = errors.New("trip has related payments")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known trip status.
func (s TripStatus) IsValid() bool {
	switch s {
	case TripPending, TripConfirmed, TripVehicleAssigned, TripDriverAssigned,
		TripInTransit, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// ActiveTripStatuses is the allow-list used when computing dashboard "active"
// counts. Defined next to the enum so the two cannot drift apart.
var ActiveTripStatuses = []TripStatus{
	TripConfirmed,
	TripVehicleAssigned,
	TripDriverAssigned,
	TripInTransit,
}

// Trip is a scheduled movement of goods with an assigned vehicle owner and driver.
type Trip struct {
	ID                    string     `json:"id" bson:"_id,omitempty"`
	TripNumber            string     `json:"trip_number" bson:"trip_number"`
	CompanyID             string     `json:"company_id" bson:"company_id"`
	VehicleOwnerID        string     `json:"vehicle_owner_id" bson:"vehicle_owner_id"`
	DriverID              string     `json:"driver_id" bson:"driver_id"`
	ManagerID             string     `json:"manager_id,omitempty" bson:"manager_id,omitempty"`
	Route                 string     `json:"route" bson:"route"`
	StartDate             *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty" bson:"estimated_delivery_date,omitempty"`
	ActualDeliveryDate    *time.Time `json:"actual_delivery_date,omitempty" bson:"actual_delivery_date,omitempty"`
	BaseAmount            float64    `json:"base_amount" bson:"base_amount"`
	ServiceCharge         float64    `json:"service_charge" bson:"service_charge"`
	TotalAmount           float64    `json:"total_amount" bson:"total_amount"`
	Status                TripStatus `json:"status" bson:"status"`
	CreatedAt             time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" bson:"updated_at"`
}

// TripTotal is the single derivation of a trip's total amount. Both create and
// partial update go through it so the invariant cannot diverge between paths.
func TripTotal(baseAmount, serviceCharge float64) float64 {
	return baseAmount + serviceCharge
}
