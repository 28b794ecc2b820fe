package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a transport request.
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestApproved   RequestStatus = "approved"
	RequestRejected   RequestStatus = "rejected"
	RequestAssigned   RequestStatus = "assigned"
	RequestInProgress RequestStatus = "in_progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCancelled  RequestStatus = "cancelled"
)

// requestTransitions defines the allowed state machine transitions.
// rejected, completed and cancelled are terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:    {RequestApproved, RequestRejected},
	RequestApproved:   {RequestAssigned, RequestCancelled},
	RequestAssigned:   {RequestInProgress, RequestCancelled},
	RequestInProgress: {RequestCompleted, RequestCancelled},
}

var ErrRequestNotFound = errors.New("transport request not found")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known request status.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestAssigned,
		RequestInProgress, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// linkedStatuses are the only statuses under which a request may carry an
// assigned trip reference.
var linkedStatuses = map[RequestStatus]struct{}{
	RequestAssigned:   {},
	RequestInProgress: {},
	RequestCompleted:  {},
}

// AllowsTripLink reports whether a request in status s may reference a trip.
func (s RequestStatus) AllowsTripLink() bool {
	_, ok := linkedStatuses[s]
	return ok
}

// QuantityUnit is the unit a transport request's quantity is expressed in.
type QuantityUnit string

const (
	UnitLiters  QuantityUnit = "liters"
	UnitTons    QuantityUnit = "tons"
	UnitBarrels QuantityUnit = "barrels"
)

// Urgency is the requested delivery priority.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// TransportRequest is a company's ask for material to be moved; the precursor
// to a Trip. Requests are never deleted so the audit trail stays intact.
type TransportRequest struct {
	ID                  string        `json:"id" bson:"_id,omitempty"`
	RequestNumber       string        `json:"request_number" bson:"request_number"`
	CompanyID           string        `json:"company_id" bson:"company_id"`
	MaterialType        string        `json:"material_type" bson:"material_type"`
	Quantity            float64       `json:"quantity" bson:"quantity"`
	QuantityUnit        QuantityUnit  `json:"quantity_unit" bson:"quantity_unit"`
	PickupLocation      string        `json:"pickup_location" bson:"pickup_location"`
	DropLocation        string        `json:"drop_location" bson:"drop_location"`
	PreferredDate       time.Time     `json:"preferred_date" bson:"preferred_date"`
	Urgency             Urgency       `json:"urgency" bson:"urgency"`
	SpecialInstructions string        `json:"special_instructions,omitempty" bson:"special_instructions,omitempty"`
	ContactPerson       string        `json:"contact_person" bson:"contact_person"`
	ContactPhone        string        `json:"contact_phone" bson:"contact_phone"`
	TemperatureControl  bool          `json:"temperature_control" bson:"temperature_control"`
	HazardousMaterial   bool          `json:"hazardous_material" bson:"hazardous_material"`
	InsuranceRequired   bool          `json:"insurance_required" bson:"insurance_required"`
	VehicleType         string        `json:"vehicle_type,omitempty" bson:"vehicle_type,omitempty"`
	EstimatedBudget     float64       `json:"estimated_budget,omitempty" bson:"estimated_budget,omitempty"`
	EstimatedCost       int64         `json:"estimated_cost" bson:"estimated_cost"`
	Status              RequestStatus `json:"status" bson:"status"`
	AdminNotes          string        `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	AssignedTripID      string        `json:"assigned_trip_id,omitempty" bson:"assigned_trip_id,omitempty"`
	CreatedAt           time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" bson:"updated_at"`
}
