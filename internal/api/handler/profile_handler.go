package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// ProfileHandler handles the authenticated user's profile.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type profileRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Phone        *string `json:"phone"`
	Bio          *string `json:"bio"`
	Address      *string `json:"address"`
	ProfileImage *string `json:"profileImage"`
}

// Get handles GET /api/v1/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	profile, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile retrieved", profile)
}

// Upsert handles PUT /api/v1/profile. The profile is created lazily on first
// write; afterwards only the supplied fields change.
func (h *ProfileHandler) Upsert(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profile, err := h.service.Upsert(c.Request().Context(), userID, ports.ProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Bio:          req.Bio,
		Address:      req.Address,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile saved", profile)
}
