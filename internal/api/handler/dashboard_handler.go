package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petrohaul/transport-system/internal/core/ports"
)

// DashboardHandler serves the per-role dashboard rollup.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /v1/dashboard.
//
// @Summary      Role-scoped dashboard rollup
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      403  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	role, actorID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), role, actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
