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

// maxUploadSize caps the size of accepted logo and resume uploads.
const maxUploadSize = 10 << 20 // 10 MiB

// CompanyHandler handles the public company directory and membership-scoped
// company management.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

type companyRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Address     *string `json:"address"`
}

type updateCompanyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Address     *string `json:"address"`
}

// Directory handles GET /api/v1/company.
func (h *CompanyHandler) Directory(c echo.Context) error {
	items, meta, err := h.service.Directory(c.Request().Context(), pageOptions(c))
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, "companies retrieved", items, meta)
}

// Get handles GET /api/v1/company/:id.
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	company, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "company retrieved", company)
}

// Create handles POST /api/v1/company.
func (h *CompanyHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.service.Create(c.Request().Context(), userID, ports.CompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "company created", company)
}

// Update handles PATCH /api/v1/company/:id.
func (h *CompanyHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.service.Update(c.Request().Context(), userID, id, ports.CompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "company updated", company)
}

// UploadLogo handles POST /api/v1/company/:id/logo with a multipart "logo"
// field. The service checks membership before the file touches storage and
// removes the previous logo object on success.
func (h *CompanyHandler) UploadLogo(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "logo file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer src.Close()

	filename := fmt.Sprintf("%s-%d%s", id, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	company, err := h.service.UpdateLogo(c.Request().Context(), userID, id, filename, src)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("logo").Inc()
	return respond(c, http.StatusOK, "logo updated", company)
}
