package handler

import "time"

type locationRequest struct {
	Lat float64 `json:"lat" validate:"required"`
	Lng float64 `json:"lng" validate:"required"`
}

type tripEventRequest struct {
	TripNumber string           `json:"trip_number" validate:"required"`
	Status     string           `json:"status"      validate:"required,oneof=confirmed vehicle_assigned driver_assigned in_transit completed cancelled"`
	Timestamp  time.Time        `json:"timestamp"   validate:"required"`
	Source     string           `json:"source"      validate:"required"`
	Location   *locationRequest `json:"location"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
