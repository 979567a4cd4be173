package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/service"
)

// StatsHandler serves the admin dashboard figures.
type StatsHandler struct {
	analytics service.AnalyticsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(analytics service.AnalyticsService) *StatsHandler {
	return &StatsHandler{analytics: analytics}
}

// AdminStats godoc
// @Summary Revenue summary
// @Description Estimated record counts and the exact revenue total
// @Tags stats
// @Produce json
// @Success 200 {object} model.RevenueSummary
// @Router /admin-stats [get]
func (h *StatsHandler) AdminStats(c echo.Context) error {
	summary, err := h.analytics.RevenueSummary(c.Request().Context())
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// OrderStats godoc
// @Summary Order breakdown
// @Description One row per purchased menu item, joined to the menu. menuItem is null for deleted items.
// @Tags stats
// @Produce json
// @Success 200 {array} model.OrderBreakdownRow
// @Router /order-stats [get]
func (h *StatsHandler) OrderStats(c echo.Context) error {
	rows, err := h.analytics.OrderBreakdown(c.Request().Context())
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// CategoryStats godoc
// @Summary Category rollup
// @Tags stats
// @Produce json
// @Success 200 {object} model.CategoryBreakdown
// @Router /order-stats/categories [get]
func (h *StatsHandler) CategoryStats(c echo.Context) error {
	breakdown, err := h.analytics.CategoryBreakdown(c.Request().Context())
	if err != nil {
		return apperrors.ToEcho(err)
	}
	return c.JSON(http.StatusOK, breakdown)
}
