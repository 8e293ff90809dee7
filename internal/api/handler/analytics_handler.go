package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/core/ports"
)

// AnalyticsHandler serves the dashboard aggregation endpoint.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Dashboard returns aggregate statistics and rendered charts.
//
// @Summary      Dashboard statistics and charts
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  domain.DashboardData
// @Failure      500  {object}  map[string]string
// @Router       /dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	data, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}
