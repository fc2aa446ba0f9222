package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nfahajan/job-board-backend/internal/api/metrics"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// JobHandler handles public job listings and membership-scoped job
// management.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type jobFilterQuery struct {
	Search    string   `query:"search"`
	Title     string   `query:"title"`
	Location  string   `query:"location"`
	Type      string   `query:"type"`
	Salary    *float64 `query:"salary"`
	MinSalary *float64 `query:"minSalary"`
	MaxSalary *float64 `query:"maxSalary"`
	Skills    string   `query:"skills"` // comma separated
	IsActive  *bool    `query:"isActive"`
	CompanyID string   `query:"companyId"`
	SortBy    string   `query:"sortBy"`
}

type jobRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description" validate:"required"`
	Location    string     `json:"location"    validate:"required"`
	Salary      *float64   `json:"salary"      validate:"omitempty,gt=0"`
	Type        string     `json:"type"        validate:"required"`
	CompanyID   string     `json:"companyId"   validate:"required,uuid"`
	Skills      []string   `json:"skills"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

type jobUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Salary      *float64   `json:"salary" validate:"omitempty,gt=0"`
	Type        *string    `json:"type"`
	Skills      []string   `json:"skills"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	IsActive    *bool      `json:"isActive"`
}

type jobStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// List handles GET /api/v1/job. Without an explicit isActive filter the
// listing covers active jobs only.
func (h *JobHandler) List(c echo.Context) error {
	var q jobFilterQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	filter := ports.JobFilter{
		SearchTerm: q.Search,
		Title:      q.Title,
		Location:   q.Location,
		Type:       q.Type,
		Salary:     q.Salary,
		MinSalary:  q.MinSalary,
		MaxSalary:  q.MaxSalary,
		IsActive:   q.IsActive,
		SortBy:     q.SortBy,
	}
	if q.Skills != "" {
		for _, s := range strings.Split(q.Skills, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Skills = append(filter.Skills, s)
			}
		}
	}
	if q.CompanyID != "" {
		companyID, err := bodyUUID(q.CompanyID, "companyId")
		if err != nil {
			return err
		}
		filter.CompanyID = &companyID
	}

	jobs, meta, err := h.service.List(c.Request().Context(), filter, pageOptions(c))
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "jobs retrieved", jobs, meta)
}

// Search handles GET /api/v1/job/search.
func (h *JobHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("q")
	if keyword == "" {
		keyword = c.QueryParam("keyword")
	}
	jobs, meta, err := h.service.Search(c.Request().Context(), keyword, c.QueryParam("sortBy"), pageOptions(c))
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "jobs retrieved", jobs, meta)
}

// Get handles GET /api/v1/job/:id.
func (h *JobHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	job, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "job retrieved", job)
}

// MyJobs handles GET /api/v1/job/my-jobs, listing jobs across every company
// the caller belongs to, inactive ones included.
func (h *JobHandler) MyJobs(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	filter := ports.MyJobsFilter{
		SearchTerm: c.QueryParam("search"),
		Type:       c.QueryParam("type"),
	}
	if raw := c.QueryParam("isActive"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	jobs, meta, err := h.service.MyJobs(c.Request().Context(), userID, filter, pageOptions(c))
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "jobs retrieved", jobs, meta)
}

// Create handles POST /api/v1/job.
func (h *JobHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	companyID, err := bodyUUID(req.CompanyID, "companyId")
	if err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), userID, ports.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        req.Type,
		CompanyID:   companyID,
		Skills:      req.Skills,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(job.Type).Inc()
	return respond(c, http.StatusCreated, "job created", job)
}

// Update handles PATCH /api/v1/job/:id.
func (h *JobHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req jobUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.Update(c.Request().Context(), userID, id, ports.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        req.Type,
		Skills:      req.Skills,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "job updated", job)
}

// SetStatus handles PATCH /api/v1/job/:id/status.
func (h *JobHandler) SetStatus(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req jobStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.SetActive(c.Request().Context(), userID, id, *req.IsActive)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "job status updated", job)
}

// Delete handles DELETE /api/v1/job/:id.
func (h *JobHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "job deleted", nil)
}
