package handler

import (
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// --- Request / Response types ---

type createRequestRequest struct {
	CompanyID           string    `json:"company_id"           validate:"required"`
	MaterialType        string    `json:"material_type"        validate:"required"`
	Quantity            float64   `json:"quantity"             validate:"required,gt=0"`
	QuantityUnit        string    `json:"quantity_unit"        validate:"required,oneof=liters tons barrels"`
	PickupLocation      string    `json:"pickup_location"      validate:"required"`
	DropLocation        string    `json:"drop_location"        validate:"required"`
	PreferredDate       time.Time `json:"preferred_date"       validate:"required"`
	Urgency             string    `json:"urgency"              validate:"required,oneof=low medium high urgent"`
	SpecialInstructions string    `json:"special_instructions"`
	ContactPerson       string    `json:"contact_person"       validate:"required"`
	ContactPhone        string    `json:"contact_phone"        validate:"required"`
	TemperatureControl  bool      `json:"temperature_control"`
	HazardousMaterial   bool      `json:"hazardous_material"`
	InsuranceRequired   bool      `json:"insurance_required"`
	VehicleType         string    `json:"vehicle_type"`
	EstimatedBudget     float64   `json:"estimated_budget"`
}

type updateRequestStatusRequest struct {
	Status         string `json:"status"           validate:"required,oneof=pending approved rejected assigned in_progress completed cancelled"`
	AdminNotes     string `json:"admin_notes"`
	AssignedTripID string `json:"assigned_trip_id"`
	Force          bool   `json:"force"`
}

type assignRequestRequest struct {
	AdminNotes string            `json:"admin_notes"`
	Trip       createTripRequest `json:"trip" validate:"required"`
}

// createRequestResponse joins the created row with the company's contact
// details so the client does not need a second lookup.
type createRequestResponse struct {
	Request      *domain.TransportRequest `json:"request"`
	CompanyName  string                   `json:"company_name"`
	CompanyEmail string                   `json:"company_email"`
}

type listRequestsResponse struct {
	Data       []*domain.TransportRequest `json:"data"`
	Pagination paginationResponse         `json:"pagination"`
}
