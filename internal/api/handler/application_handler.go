package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfahajan/job-board-backend/internal/api/metrics"
	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// ApplicationHandler handles the application lifecycle for job seekers and
// employers.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type applyRequest struct {
	JobID       string  `json:"jobId"    validate:"required,uuid"`
	ResumeID    string  `json:"resumeId" validate:"required,uuid"`
	CoverLetter *string `json:"coverLetter"`
}

type applicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Apply handles POST /api/v1/application.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	jobID, err := bodyUUID(req.JobID, "jobId")
	if err != nil {
		return err
	}
	resumeID, err := bodyUUID(req.ResumeID, "resumeId")
	if err != nil {
		return err
	}

	app, err := h.service.Apply(c.Request().Context(), userID, ports.ApplyInput{
		JobID:       jobID,
		ResumeID:    resumeID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	return respond(c, http.StatusCreated, "application submitted", app)
}

// MyApplications handles GET /api/v1/application/my-applications.
func (h *ApplicationHandler) MyApplications(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	apps, meta, err := h.service.MyApplications(c.Request().Context(), userID, c.QueryParam("status"), pageOptions(c))
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "applications retrieved", apps, meta)
}

// Get handles GET /api/v1/application/:id.
func (h *ApplicationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "application retrieved", app)
}

// JobApplications handles GET /api/v1/application/job/:jobId.
func (h *ApplicationHandler) JobApplications(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "jobId")
	if err != nil {
		return err
	}
	apps, err := h.service.JobApplications(c.Request().Context(), userID, jobID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "applications retrieved", apps)
}

// EmployerApplications handles GET /api/v1/application/employer/my-applications.
func (h *ApplicationHandler) EmployerApplications(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	apps, err := h.service.EmployerApplications(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "applications retrieved", apps)
}

// UpdateStatus handles PATCH /api/v1/application/:id/status.
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req applicationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.service.UpdateStatus(c.Request().Context(), userID, id, domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.ApplicationStatusChangesTotal.WithLabelValues(string(app.Status)).Inc()
	return respond(c, http.StatusOK, "application status updated", app)
}

// Delete handles DELETE /api/v1/application/:id.
func (h *ApplicationHandler) Delete(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), userID, role, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "application deleted", nil)
}
