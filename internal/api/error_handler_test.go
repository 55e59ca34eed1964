package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

func handle(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if jsonErr := json.Unmarshal(rec.Body.Bytes(), &body); jsonErr != nil {
		t.Fatalf("invalid json: %v", jsonErr)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrExpiredSession, http.StatusUnauthorized, "session expired"},
		{fmt.Errorf("wrapped: %w", domain.ErrNoRole), http.StatusUnauthorized, "access denied"},
		{echo.NewHTTPError(http.StatusUnauthorized, "you must log in"), http.StatusUnauthorized, "you must log in"},
		{domain.ErrForbidden, http.StatusUnauthorized, "access denied"},
		{domain.ErrRoleNotFound, http.StatusNotFound, "record not found"},
		{domain.ErrProtectedRole, http.StatusUnprocessableEntity, domain.ErrProtectedRole.Error()},
		{domain.ErrModuleNotFound, http.StatusNotFound, "record not found"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		code, body := handle(t, tc.err)
		if code != tc.code || body.Message != tc.message {
			t.Fatalf("%v: expected %d %q, got %d %q", tc.err, tc.code, tc.message, code, body.Message)
		}
	}
}

func TestHTTPErrorHandler_FieldErrors(t *testing.T) {
	code, body := handle(t, domain.ErrDuplicateRole)
	if code != http.StatusUnprocessableEntity || len(body.Errors["nombre"]) != 1 {
		t.Fatalf("expected 422 with nombre error, got %d %+v", code, body)
	}

	code, body = handle(t, domain.NewFieldError("validation failed", "modulos", "modulos is required"))
	if code != http.StatusUnprocessableEntity || body.Errors["modulos"][0] != "modulos is required" {
		t.Fatalf("unexpected validation response: %d %+v", code, body)
	}
}

func TestHTTPErrorHandler_AccountErrors(t *testing.T) {
	cases := []struct {
		err   error
		field string
	}{
		{domain.ErrDuplicateModule, "nombre"},
		{domain.ErrModuleNameRequired, "nombre"},
		{domain.ErrDuplicateUser, "nombre"},
		{domain.ErrUnknownRole, "rolId"},
	}

	for _, tc := range cases {
		code, body := handle(t, tc.err)
		if code != http.StatusUnprocessableEntity || len(body.Errors[tc.field]) != 1 {
			t.Fatalf("%v: expected 422 with %s error, got %d %+v", tc.err, tc.field, code, body)
		}
	}
}
