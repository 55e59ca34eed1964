package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/eie-idiomas/admin-api/internal/api/metrics"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// Permission lets the request through when the session user's role owns any
// of modules. It must run after Auth.
func Permission(gate ports.PermissionGate, modules ...string) echo.MiddlewareFunc {
	required := append([]string(nil), modules...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := gate.Authorize(c.Request().Context(), CurrentUser(c), required...); err != nil {
				metrics.AuthorizationsTotal.WithLabelValues(resultLabel(err)).Inc()
				return unauthorized(err)
			}
			metrics.AuthorizationsTotal.WithLabelValues("ok").Inc()
			return next(c)
		}
	}
}
