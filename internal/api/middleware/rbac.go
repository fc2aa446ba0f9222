package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces role-based access control over the role claim injected by
// Auth. It gates route groups only; resource-level rights (company
// membership, resume ownership) are enforced in the services.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success":    false,
					"statusCode": http.StatusForbidden,
					"message":    "forbidden",
				})
			}
			return next(c)
		}
	}
}
