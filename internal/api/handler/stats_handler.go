package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// StatsHandler serves the dashboard aggregation views.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// MyStats handles GET /api/v1/application/my-stats.
func (h *StatsHandler) MyStats(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	stats, err := h.service.UserStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "stats retrieved", stats)
}

// MonthlyStats handles GET /api/v1/application/monthly-stats.
func (h *StatsHandler) MonthlyStats(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	buckets, err := h.service.MonthlyApplications(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "monthly stats retrieved", buckets)
}

// EmployerStats handles GET /api/v1/application/employer/stats.
func (h *StatsHandler) EmployerStats(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	stats, err := h.service.EmployerStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "stats retrieved", stats)
}

// AdminStats handles GET /api/v1/stats/admin.
func (h *StatsHandler) AdminStats(c echo.Context) error {
	stats, err := h.service.AdminStats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "stats retrieved", stats)
}
