package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user account administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=180"`
	Activo   *bool  `json:"activo" validate:"required"`
	RolID    string `json:"rolId" validate:"required"`
}

func (r createUserRequest) input() ports.UserInput {
	return ports.UserInput{Nombre: r.Nombre, Password: r.Password, Activo: *r.Activo, RolID: r.RolID}
}

// updateUserRequest leaves the password unchanged when it is omitted.
type updateUserRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=255"`
	Password string `json:"password" validate:"omitempty,max=180"`
	Activo   *bool  `json:"activo" validate:"required"`
	RolID    string `json:"rolId" validate:"required"`
}

func (r updateUserRequest) input() ports.UserInput {
	return ports.UserInput{Nombre: r.Nombre, Password: r.Password, Activo: *r.Activo, RolID: r.RolID}
}

// List returns a page of users.
//
// @Summary      List users
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        pagina     query  int     false  "Page (1-based)"
// @Param        porPagina  query  int     false  "Rows per page"
// @Param        buscar     query  string  false  "Case-insensitive search on nombre"
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]string
// @Router       /usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListUsers(c.Request().Context(), q.filter())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record list", page)
}

// Show returns a user with its role.
//
// @Summary      Get user
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /usuarios/{id} [get]
func (h *UserHandler) Show(c echo.Context) error {
	profile, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record detail", profile)
}

// @Summary      Create user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User"
// @Success      200   {object}  envelope
// @Failure      422   {object}  map[string]any
// @Router       /usuarios [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record stored", user)
}

// Update replaces a user. Setting activo to false ends the user's session.
//
// @Summary      Update user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "User"
// @Success      200   {object}  envelope
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /usuarios/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record updated", user)
}

// @Summary      Delete user
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /usuarios/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record deleted", nil)
}
