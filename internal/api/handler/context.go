package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a parseable user id
// and a non-empty role prove the middleware ran.
func ctxClaims(c echo.Context) (userID uuid.UUID, role string, err error) {
	rawID, _ := c.Get("user_id").(string)
	userID, parseErr := uuid.Parse(rawID)
	if parseErr != nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ = c.Get("role").(string)
	if role == "" {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return userID, role, nil
}

// pathID parses a uuid path parameter, rejecting malformed ids before they
// reach a service.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// bodyUUID parses a uuid carried in a request body field.
func bodyUUID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
