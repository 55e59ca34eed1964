package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// ModuleHandler serves the module catalogue.
type ModuleHandler struct {
	service ports.ModuleService
}

func NewModuleHandler(service ports.ModuleService) *ModuleHandler {
	return &ModuleHandler{service: service}
}

type moduleRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=255"`
	Posicion int    `json:"posicion" validate:"min=0,max=255"`
}

func (r moduleRequest) input() ports.ModuleInput {
	return ports.ModuleInput{Nombre: r.Nombre, Posicion: r.Posicion}
}

// List returns a page of modules, or every module when combo=true.
//
// @Summary      List modules
// @Tags         modulos
// @Produce      json
// @Security     BearerAuth
// @Param        pagina     query  int     false  "Page (1-based)"
// @Param        porPagina  query  int     false  "Rows per page"
// @Param        buscar     query  string  false  "Case-insensitive search on nombre"
// @Param        combo      query  bool    false  "Return every module without pagination"
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]string
// @Router       /modulos [get]
func (h *ModuleHandler) List(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}

	var payload any
	if q.Combo {
		var modules []*domain.Module
		modules, err = h.service.ComboModules(c.Request().Context())
		payload = modules
	} else {
		payload, err = h.service.ListModules(c.Request().Context(), q.filter())
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record list", payload)
}

// @Summary      Get module
// @Tags         modulos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Module ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /modulos/{id} [get]
func (h *ModuleHandler) Show(c echo.Context) error {
	module, err := h.service.GetModule(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record detail", module)
}

// @Summary      Create module
// @Tags         modulos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      moduleRequest  true  "Module"
// @Success      200   {object}  envelope
// @Failure      422   {object}  map[string]any
// @Router       /modulos [post]
func (h *ModuleHandler) Create(c echo.Context) error {
	var req moduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	module, err := h.service.CreateModule(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record stored", module)
}

// Update renames or repositions a module. Roles holding it see the change
// on their next request.
//
// @Summary      Update module
// @Tags         modulos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Module ID"
// @Param        body  body      moduleRequest  true  "Module"
// @Success      200   {object}  envelope
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /modulos/{id} [put]
func (h *ModuleHandler) Update(c echo.Context) error {
	var req moduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	module, err := h.service.UpdateModule(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record updated", module)
}

// Delete removes a module and revokes it from every role.
//
// @Summary      Delete module
// @Tags         modulos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Module ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]string
// @Router       /modulos/{id} [delete]
func (h *ModuleHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteModule(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "record deleted", nil)
}
