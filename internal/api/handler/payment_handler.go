package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petrohaul/transport-system/internal/api/metrics"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// PaymentHandler handles HTTP requests for the payment ledger.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Create handles POST /v1/payments.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	payment, err := h.service.CreatePayment(c.Request().Context(), ports.CreatePaymentInput{
		TripID:         req.TripID,
		CompanyID:      req.CompanyID,
		VehicleOwnerID: req.VehicleOwnerID,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  req.TransactionID,
	})
	if err != nil {
		return err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues(string(payment.Status)).Inc()
	return c.JSON(http.StatusCreated, payment)
}

// Get handles GET /v1/payments/:id.
//
// @Summary      Get a payment by id
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Payment id (PAY-...)"
// @Success      200 {object}  domain.Payment
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/payments/{id} [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	role, actorID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	payment, err := h.service.GetPayment(c.Request().Context(), c.Param("id"), role, actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// List handles GET /v1/payments.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        status            query     string  false  "Filter by status"
// @Param        company_id        query     string  false  "Filter by company (admin only)"
// @Param        vehicle_owner_id  query     string  false  "Filter by vehicle owner (admin only)"
// @Param        trip_id           query     string  false  "Filter by trip"
// @Param        page              query     int     false  "Page number"
// @Param        limit             query     int     false  "Page size (max 100)"
// @Success      200               {object}  listPaymentsResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	role, actorID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListPayments(c.Request().Context(), ports.ListPaymentsInput{
		Role:           role,
		ActorID:        actorID,
		Status:         c.QueryParam("status"),
		CompanyID:      c.QueryParam("company_id"),
		VehicleOwnerID: c.QueryParam("vehicle_owner_id"),
		TripID:         c.QueryParam("trip_id"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPaymentsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// UpdateStatus handles PATCH /v1/payments/:id/status.
//
// @Summary      Transition a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Payment id"
// @Param        body  body      updatePaymentStatusRequest  true  "New status"
// @Success      200   {object}  domain.Payment
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/payments/{id}/status [patch]
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	var req updatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	payment, err := h.service.UpdatePaymentStatus(c.Request().Context(), ports.UpdatePaymentStatusInput{
		ID:            c.Param("id"),
		Status:        req.Status,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /v1/payments/:id.
//
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Payment id"
// @Success      204
// @Failure      404 {object}  errorResponse
// @Router       /v1/payments/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePayment(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/payments/stats.
//
// @Summary      Aggregate payment counts and amounts by status
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PaymentStats
// @Router       /v1/payments/stats [get]
func (h *PaymentHandler) Stats(c echo.Context) error {
	stats, err := h.service.PaymentStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
