package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nfahajan/job-board-backend/internal/api/metrics"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// ResumeHandler handles resume uploads and management for job seekers.
type ResumeHandler struct {
	service ports.ResumeService
	files   ports.FileStore
}

func NewResumeHandler(service ports.ResumeService, files ports.FileStore) *ResumeHandler {
	return &ResumeHandler{service: service, files: files}
}

type updateResumeRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1"`
	IsDefault *bool   `json:"isDefault"`
}

// List handles GET /api/v1/resume.
func (h *ResumeHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	resumes, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "resumes retrieved", resumes)
}

// Get handles GET /api/v1/resume/:id.
func (h *ResumeHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resume, err := h.service.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "resume retrieved", resume)
}

// Create handles POST /api/v1/resume. The resume file arrives as multipart
// form data under the "resume" field, alongside "title" and "isDefault".
func (h *ResumeHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "resume file is required")
	}
	if file.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
	}

	title := c.FormValue("title")
	if title == "" {
		title = file.Filename
	}
	isDefault := c.FormValue("isDefault") == "true"

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read uploaded file")
	}
	defer src.Close()

	filename := fmt.Sprintf("%s-%d%s", userID, time.Now().UnixNano(), filepath.Ext(file.Filename))
	fileURL, err := h.files.Save(c.Request().Context(), "resumes", filename, src)
	if err != nil {
		return err
	}

	resume, err := h.service.Create(c.Request().Context(), userID, ports.CreateResumeInput{
		Title:     title,
		FileURL:   fileURL,
		IsDefault: isDefault,
	})
	if err != nil {
		// The row never existed, so the stored object would be orphaned.
		_ = h.files.Delete(c.Request().Context(), fileURL)
		return err
	}

	metrics.UploadsTotal.WithLabelValues("resume").Inc()
	return respond(c, http.StatusCreated, "resume uploaded", resume)
}

// Update handles PATCH /api/v1/resume/:id.
func (h *ResumeHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateResumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resume, err := h.service.Update(c.Request().Context(), userID, id, ports.UpdateResumeInput{
		Title:     req.Title,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "resume updated", resume)
}

// SetDefault handles PATCH /api/v1/resume/:id/default.
func (h *ResumeHandler) SetDefault(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resume, err := h.service.SetDefault(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "default resume updated", resume)
}

// Delete handles DELETE /api/v1/resume/:id.
func (h *ResumeHandler) Delete(c echo.Context) error {
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
	return respond(c, http.StatusOK, "resume deleted", nil)
}
