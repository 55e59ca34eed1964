package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eie-idiomas/admin-api/internal/api/metrics"
	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// ContextUserKey is the echo context key holding the authenticated *domain.User.
const ContextUserKey = "user"

// Auth validates the bearer token and injects the session user into context.
func Auth(authenticator ports.TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			user, err := authenticator.Authenticate(c.Request().Context(), header)
			if err != nil {
				metrics.AuthenticationsTotal.WithLabelValues(resultLabel(err)).Inc()
				return unauthorized(err)
			}
			metrics.AuthenticationsTotal.WithLabelValues("ok").Inc()

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ContextUserKey).(*domain.User)
	return user
}

// unauthorized converts credential faults to a 401 carrying the reason.
// Anything else is left for the error handler to report as a server fault.
func unauthorized(err error) error {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return echo.NewHTTPError(http.StatusUnauthorized, ae.Message).SetInternal(err)
	}
	return err
}

func resultLabel(err error) string {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return ae.Kind.String()
	}
	return "error"
}
