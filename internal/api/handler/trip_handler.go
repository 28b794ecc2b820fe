package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petrohaul/transport-system/internal/api/metrics"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// TripHandler handles HTTP requests for trip operations.
type TripHandler struct {
	service ports.TripService
}

func NewTripHandler(service ports.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// Create handles POST /v1/trips.
//
// @Summary      Create a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTripRequest  true  "Trip details"
// @Success      201   {object}  domain.Trip
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/trips [post]
func (h *TripHandler) Create(c echo.Context) error {
	var req createTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	trip, err := h.service.CreateTrip(c.Request().Context(), toCreateTripInput(req))
	if err != nil {
		return err
	}

	metrics.TripsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, trip)
}

// Get handles GET /v1/trips/:id.
//
// @Summary      Get a trip by id
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Trip id"
// @Success      200 {object}  domain.Trip
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/trips/{id} [get]
func (h *TripHandler) Get(c echo.Context) error {
	role, actorID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	trip, err := h.service.GetTrip(c.Request().Context(), ports.GetTripInput{
		ID:      c.Param("id"),
		Role:    role,
		ActorID: actorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trip)
}

// List handles GET /v1/trips.
//
// @Summary      List trips
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        status            query     string  false  "Filter by status"
// @Param        company_id        query     string  false  "Filter by company (admin only)"
// @Param        vehicle_owner_id  query     string  false  "Filter by vehicle owner (admin only)"
// @Param        driver_id         query     string  false  "Filter by driver (admin only)"
// @Param        page              query     int     false  "Page number"
// @Param        limit             query     int     false  "Page size (max 100)"
// @Success      200               {object}  listTripsResponse
// @Router       /v1/trips [get]
func (h *TripHandler) List(c echo.Context) error {
	role, actorID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListTrips(c.Request().Context(), ports.ListTripsInput{
		Role:           role,
		ActorID:        actorID,
		Status:         c.QueryParam("status"),
		CompanyID:      c.QueryParam("company_id"),
		VehicleOwnerID: c.QueryParam("vehicle_owner_id"),
		DriverID:       c.QueryParam("driver_id"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listTripsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// UpdateStatus handles PATCH /v1/trips/:id/status.
//
// @Summary      Transition a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Trip id"
// @Param        body  body      updateTripStatusRequest  true  "New status"
// @Success      200   {object}  domain.Trip
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/trips/{id}/status [patch]
func (h *TripHandler) UpdateStatus(c echo.Context) error {
	var req updateTripStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	trip, err := h.service.UpdateTripStatus(c.Request().Context(), ports.UpdateTripStatusInput{
		ID:     c.Param("id"),
		Status: req.Status,
		Force:  req.Force,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trip)
}

// Update handles PATCH /v1/trips/:id — a partial field-level patch.
//
// @Summary      Update trip fields
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Trip id"
// @Param        body  body      updateTripRequest  true  "Fields to change"
// @Success      200   {object}  domain.Trip
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/trips/{id} [patch]
func (h *TripHandler) Update(c echo.Context) error {
	var req updateTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	trip, err := h.service.UpdateTrip(c.Request().Context(), ports.UpdateTripInput{
		ID: c.Param("id"),
		Patch: ports.TripPatch{
			Route:                 req.Route,
			ManagerID:             req.ManagerID,
			EstimatedDeliveryDate: req.EstimatedDeliveryDate,
			BaseAmount:            req.BaseAmount,
			ServiceCharge:         req.ServiceCharge,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trip)
}

// Delete handles DELETE /v1/trips/:id.
//
// @Summary      Delete a trip
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Trip id"
// @Success      204
// @Failure      400 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/trips/{id} [delete]
func (h *TripHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteTrip(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/trips/stats.
//
// @Summary      Aggregate trip counts and revenue by status
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.TripStats
// @Router       /v1/trips/stats [get]
func (h *TripHandler) Stats(c echo.Context) error {
	stats, err := h.service.TripStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func toCreateTripInput(req createTripRequest) ports.CreateTripInput {
	return ports.CreateTripInput{
		TripNumber:            req.TripNumber,
		CompanyID:             req.CompanyID,
		VehicleOwnerID:        req.VehicleOwnerID,
		DriverID:              req.DriverID,
		ManagerID:             req.ManagerID,
		Route:                 req.Route,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		BaseAmount:            req.BaseAmount,
		ServiceCharge:         req.ServiceCharge,
	}
}
