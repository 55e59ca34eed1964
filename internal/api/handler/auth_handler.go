package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eie-idiomas/admin-api/internal/api/metrics"
	"github.com/eie-idiomas/admin-api/internal/api/middleware"
	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=180"`
}

type changePasswordRequest struct {
	PasswordAnterior     string `json:"passwordAnterior" validate:"required,max=180"`
	Password             string `json:"password" validate:"required,max=180"`
	PasswordConfirmacion string `json:"passwordConfirmacion" validate:"required,eqfield=Password"`
}

type loginPayload struct {
	Type    string          `json:"type"`
	Token   string          `json:"token"`
	Usuario *domain.Profile `json:"usuario"`
}

// Login authenticates a user and starts a new session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  envelope
// @Failure      422   {object}  map[string]any
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, profile, err := h.authService.Login(c.Request().Context(), req.Nombre, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return domain.NewFieldError("access denied", "nombre", "user does not exist")
		case errors.Is(err, domain.ErrUserInactive):
			return domain.NewFieldError("access denied", "nombre", "inactive user")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return domain.NewFieldError("access denied", "password", "incorrect credentials")
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	return respond(c, http.StatusOK, "welcome", loginPayload{Type: "Bearer", Token: token, Usuario: profile})
}

// Me returns the authenticated user with its role and modules.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	profile, err := h.authService.Profile(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "authenticated user", profile)
}

// Logout clears the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "session finished", nil)
}

// ChangePassword replaces the password of the authenticated user.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User ID"
// @Param        body  body      changePasswordRequest  true  "Passwords"
// @Success      200   {object}  envelope
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /perfil/{id} [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.authService.ChangePassword(c.Request().Context(), middleware.CurrentUser(c), ports.ChangePasswordInput{
		TargetID: c.Param("id"),
		Previous: req.PasswordAnterior,
		Password: req.Password,
	})
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return domain.NewFieldError("error", "passwordAnterior", "previous password is incorrect")
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password changed", nil)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "unknown_user"
	case errors.Is(err, domain.ErrUserInactive):
		return "inactive_user"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
