package handler

import (
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

type createTripRequest struct {
	TripNumber            string     `json:"trip_number"             validate:"required"`
	CompanyID             string     `json:"company_id"              validate:"required"`
	VehicleOwnerID        string     `json:"vehicle_owner_id"        validate:"required"`
	DriverID              string     `json:"driver_id"               validate:"required"`
	ManagerID             string     `json:"manager_id"`
	Route                 string     `json:"route"                   validate:"required"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	BaseAmount            float64    `json:"base_amount"             validate:"required,gt=0"`
	ServiceCharge         float64    `json:"service_charge"          validate:"gte=0"`
}

type updateTripStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed vehicle_assigned driver_assigned in_transit completed cancelled"`
	Force  bool   `json:"force"`
}

// updateTripRequest is a partial patch; absent fields stay untouched.
type updateTripRequest struct {
	Route                 *string    `json:"route"`
	ManagerID             *string    `json:"manager_id"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	BaseAmount            *float64   `json:"base_amount"   validate:"omitempty,gt=0"`
	ServiceCharge         *float64   `json:"service_charge" validate:"omitempty,gte=0"`
}

type listTripsResponse struct {
	Data       []*domain.Trip     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
