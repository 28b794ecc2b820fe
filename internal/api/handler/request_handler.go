package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petrohaul/transport-system/internal/api/metrics"
	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// RequestHandler handles HTTP requests for the transport request lifecycle.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create handles POST /v1/requests.
//
// @Summary      Create a transport request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Transport request details"
// @Success      201   {object}  createRequestResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	role, actorID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	// A company always creates on its own behalf, whatever the payload says.
	if role == domain.RoleCompany {
		req.CompanyID = actorID
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.CreateRequest(c.Request().Context(), toCreateRequestInput(req))
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues(string(result.Request.Urgency)).Inc()
	return c.JSON(http.StatusCreated, createRequestResponse{
		Request:      result.Request,
		CompanyName:  result.CompanyName,
		CompanyEmail: result.CompanyEmail,
	})
}

// Get handles GET /v1/requests/:id.
//
// @Summary      Get a transport request by id
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Request id"
// @Success      200 {object}  domain.TransportRequest
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	role, actorID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	request, err := h.service.GetRequest(c.Request().Context(), ports.GetRequestInput{
		ID:      c.Param("id"),
		Role:    role,
		ActorID: actorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// List handles GET /v1/requests.
//
// @Summary      List transport requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        urgency     query     string  false  "Filter by urgency"
// @Param        company_id  query     string  false  "Filter by company (admin only)"
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Page size (max 100)"
// @Success      200         {object}  listRequestsResponse
// @Router       /v1/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	role, actorID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListRequests(c.Request().Context(), ports.ListRequestsInput{
		Role:      role,
		ActorID:   actorID,
		Status:    c.QueryParam("status"),
		Urgency:   c.QueryParam("urgency"),
		CompanyID: c.QueryParam("company_id"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listRequestsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// UpdateStatus handles PATCH /v1/requests/:id/status.
//
// @Summary      Transition a transport request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Request id"
// @Param        body  body      updateRequestStatusRequest  true  "New status"
// @Success      200   {object}  domain.TransportRequest
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	var req updateRequestStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	request, err := h.service.UpdateRequestStatus(c.Request().Context(), ports.UpdateRequestStatusInput{
		ID:             c.Param("id"),
		Status:         req.Status,
		AdminNotes:     req.AdminNotes,
		AssignedTripID: req.AssignedTripID,
		Force:          req.Force,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Assign handles POST /v1/requests/:id/assign — approves the request into a
// trip and links them in one unit of work.
//
// @Summary      Assign a transport request to a new trip
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Request id"
// @Param        body  body      assignRequestRequest  true  "Trip details"
// @Success      201   {object}  domain.Trip
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests/{id}/assign [post]
func (h *RequestHandler) Assign(c echo.Context) error {
	var req assignRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	trip, err := h.service.AssignRequest(c.Request().Context(), ports.AssignRequestInput{
		RequestID:  c.Param("id"),
		AdminNotes: req.AdminNotes,
		Trip:       toCreateTripInput(req.Trip),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trip)
}

// Stats handles GET /v1/requests/stats.
//
// @Summary      Aggregate request counts and estimated cost by status
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.RequestStats
// @Router       /v1/requests/stats [get]
func (h *RequestHandler) Stats(c echo.Context) error {
	stats, err := h.service.RequestStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func toCreateRequestInput(req createRequestRequest) ports.CreateRequestInput {
	return ports.CreateRequestInput{
		CompanyID:           req.CompanyID,
		MaterialType:        req.MaterialType,
		Quantity:            req.Quantity,
		QuantityUnit:        req.QuantityUnit,
		PickupLocation:      req.PickupLocation,
		DropLocation:        req.DropLocation,
		PreferredDate:       req.PreferredDate,
		Urgency:             req.Urgency,
		SpecialInstructions: req.SpecialInstructions,
		ContactPerson:       req.ContactPerson,
		ContactPhone:        req.ContactPhone,
		TemperatureControl:  req.TemperatureControl,
		HazardousMaterial:   req.HazardousMaterial,
		InsuranceRequired:   req.InsuranceRequired,
		VehicleType:         req.VehicleType,
		EstimatedBudget:     req.EstimatedBudget,
	}
}
