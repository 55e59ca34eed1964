package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// RoleHandler handles HTTP requests for role administration.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

type roleRequest struct {
	Nombre   string   `json:"nombre" validate:"required,max=255"`
	Posicion int      `json:"posicion" validate:"min=0,max=255"`
	Modulos  []string `json:"modulos" validate:"required,min=1"`
}

func (r roleRequest) input() ports.RoleInput {
	return ports.RoleInput{Nombre: r.Nombre, Posicion: r.Posicion, ModuloIDs: r.Modulos}
}

type listQuery struct {
	Pagina    int
	PorPagina int
	Buscar    string
	Combo     bool
}

// bindListQuery reads pagina, porPagina, buscar and combo from the query string.
func bindListQuery(c echo.Context) (listQuery, error) {
	q := listQuery{Pagina: 1}
	err := echo.QueryParamsBinder(c).
		Int("pagina", &q.Pagina).
		Int("porPagina", &q.PorPagina).
		String("buscar", &q.Buscar).
		Bool("combo", &q.Combo).
		BindError()
	if err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	return q, nil
}

func (q listQuery) filter() ports.ListFilter {
	return ports.ListFilter{Buscar: q.Buscar, Pagina: q.Pagina, PorPagina: q.PorPagina}
}

// List returns a page of roles, or every role when combo=true.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        pagina     query  int     false  "Page (1-based)"
// @Param        porPagina  query  int     false  "Rows per page"
// @Param        buscar     query  string  false  "Case-insensitive search on nombre"
// @Param        combo      query  bool    false  "Return every role without pagination"
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]string
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}

	if q.Combo {
		roles, err := h.service.ComboRoles(c.Request().Context())
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "record list", roles)
	}

	page, err := h.service.ListRoles(c.Request().Context(), q.filter())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record list", page)
}

// Show returns a role with its modules.
//
// @Summary      Get role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /roles/{id} [get]
func (h *RoleHandler) Show(c echo.Context) error {
	role, err := h.service.GetRole(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record detail", role)
}

// Create stores a new role.
//
// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleRequest  true  "Role"
// @Success      200   {object}  envelope
// @Failure      422   {object}  map[string]any
// @Router       /roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.service.CreateRole(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record stored", role)
}

// Update replaces a role.
//
// @Summary      Update role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Role ID"
// @Param        body  body      roleRequest  true  "Role"
// @Success      200   {object}  envelope
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /roles/{id} [put]
func (h *RoleHandler) Update(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record updated", role)
}

// Delete removes a role. The administrator role cannot be removed.
//
// @Summary      Delete role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteRole(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record deleted", nil)
}
