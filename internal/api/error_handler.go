package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps credential faults to 401 with their reason.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, middleware 401s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return http.StatusUnauthorized, errorResponse{Message: ae.Message}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Message: ve.Message, Errors: ve.Fields}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusUnauthorized, errorResponse{Message: "access denied"}
	case errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusNotFound, errorResponse{Message: "record not found"}
	case errors.Is(err, domain.ErrDuplicateRole):
		return http.StatusUnprocessableEntity, fieldResponse("duplicate record", "nombre", "the record already exists")
	case errors.Is(err, domain.ErrRoleNameRequired):
		return http.StatusUnprocessableEntity, fieldResponse("validation failed", "nombre", err.Error())
	case errors.Is(err, domain.ErrRoleWithoutModule), errors.Is(err, domain.ErrUnknownModule):
		return http.StatusUnprocessableEntity, fieldResponse("validation failed", "modulos", err.Error())
	case errors.Is(err, domain.ErrModuleNotFound):
		return http.StatusNotFound, errorResponse{Message: "record not found"}
	case errors.Is(err, domain.ErrDuplicateModule), errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusUnprocessableEntity, fieldResponse("duplicate record", "nombre", "the record already exists")
	case errors.Is(err, domain.ErrModuleNameRequired):
		return http.StatusUnprocessableEntity, fieldResponse("validation failed", "nombre", err.Error())
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusUnprocessableEntity, fieldResponse("validation failed", "rolId", err.Error())
	case errors.Is(err, domain.ErrProtectedRole):
		return http.StatusUnprocessableEntity, errorResponse{Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnprocessableEntity, fieldResponse("access denied", "password", "incorrect credentials")
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Message: "user not found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "internal server error"}
}

func fieldResponse(message, field, reason string) errorResponse {
	return errorResponse{Message: message, Errors: map[string][]string{field: {reason}}}
}
