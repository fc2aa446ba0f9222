package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nfahajan/job-board-backend/internal/core/pagination"
)

// envelope is the canonical success shape for all API responses. Errors use
// the matching error envelope rendered by the central error handler.
type envelope struct {
	Success    bool             `json:"success"`
	StatusCode int              `json:"statusCode"`
	Message    string           `json:"message"`
	Data       interface{}      `json:"data,omitempty"`
	Meta       *pagination.Meta `json:"meta,omitempty"`
}

func respond(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, envelope{
		Success:    true,
		StatusCode: code,
		Message:    message,
		Data:       data,
	})
}

func respondPage(c echo.Context, code int, message string, data interface{}, meta pagination.Meta) error {
	return c.JSON(code, envelope{
		Success:    true,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Meta:       &meta,
	})
}

// pageOptions reads page/limit query parameters; invalid values fall back to
// defaults downstream.
func pageOptions(c echo.Context) pagination.Options {
	var opts pagination.Options
	_ = echo.QueryParamsBinder(c).
		Int("page", &opts.Page).
		Int("limit", &opts.Limit).
		BindError()
	return opts
}
