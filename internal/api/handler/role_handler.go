package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantry/admin-api/internal/api/metrics"
	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// List returns every role ordered by name.
//
// @Summary  List roles
// @Tags     roles
// @Produce  json
// @Success  200  {array}   domain.Role
// @Failure  401  {object}  errorResponse
// @Failure  403  {object}  errorResponse
// @Router   /api/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Permissions returns the fixed permission catalog.
//
// @Summary  Permission catalog
// @Tags     roles
// @Produce  json
// @Success  200  {array}  domain.Permission
// @Router   /api/roles/permissions [get]
func (h *RoleHandler) Permissions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.roleService.ListPermissions())
}

// Get returns one role.
//
// @Summary  Get role
// @Tags     roles
// @Produce  json
// @Param    id   path      string  true  "Role id"
// @Success  200  {object}  domain.Role
// @Failure  404  {object}  errorResponse
// @Router   /api/roles/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := h.roleService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Create adds a role. Unknown permission ids are dropped.
//
// @Summary  Create role
// @Tags     roles
// @Accept   json
// @Produce  json
// @Param    body  body      createRoleRequest  true  "Role"
// @Success  201   {object}  domain.Role
// @Failure  400   {object}  errorResponse
// @Failure  409   {object}  errorResponse  "Name taken"
// @Failure  422   {object}  errorResponse
// @Router   /api/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RoleMutationsTotal.WithLabelValues("create", "invalid").Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	role, err := h.roleService.Create(c.Request().Context(), toCreateRoleInput(req))
	metrics.RoleMutationsTotal.WithLabelValues("create", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// Update applies a partial update. A present permissions list replaces the set.
//
// @Summary  Update role
// @Tags     roles
// @Accept   json
// @Produce  json
// @Param    id    path      string             true  "Role id"
// @Param    body  body      updateRoleRequest  true  "Fields to change"
// @Success  200   {object}  domain.Role
// @Failure  404   {object}  errorResponse
// @Failure  409   {object}  errorResponse
// @Failure  422   {object}  errorResponse
// @Router   /api/roles/{id} [patch]
func (h *RoleHandler) Update(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RoleMutationsTotal.WithLabelValues("update", "invalid").Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	role, err := h.roleService.Update(c.Request().Context(), c.Param("id"), toUpdateRoleInput(req))
	metrics.RoleMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Delete removes a role that no user holds.
//
// @Summary  Delete role
// @Tags     roles
// @Produce  json
// @Param    id   path      string  true  "Role id"
// @Success  200  {object}  messageResponse
// @Failure  404  {object}  errorResponse
// @Failure  409  {object}  errorResponse  "Role assigned to users"
// @Router   /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	err := h.roleService.Delete(c.Request().Context(), c.Param("id"))
	metrics.RoleMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Role deleted successfully"})
}

// Categories reports per category whether the role holds none, some or all
// of its permissions.
//
// @Summary  Role category state
// @Tags     roles
// @Produce  json
// @Param    id   path      string  true  "Role id"
// @Success  200  {array}   ports.CategoryState
// @Failure  404  {object}  errorResponse
// @Router   /api/roles/{id}/categories [get]
func (h *RoleHandler) Categories(c echo.Context) error {
	states, err := h.roleService.CategoryStates(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, states)
}

// ToggleCategory adds or removes every permission of one category.
//
// @Summary  Toggle permission category
// @Tags     roles
// @Accept   json
// @Produce  json
// @Param    id        path      string                 true  "Role id"
// @Param    category  path      string                 true  "Permission category"
// @Param    body      body      toggleCategoryRequest  true  "Selection"
// @Success  200       {object}  domain.Role
// @Failure  400       {object}  errorResponse  "Unknown category"
// @Failure  404       {object}  errorResponse
// @Failure  422       {object}  errorResponse
// @Router   /api/roles/{id}/categories/{category} [put]
func (h *RoleHandler) ToggleCategory(c echo.Context) error {
	category, err := domain.ParseCategory(c.Param("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req toggleCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RoleMutationsTotal.WithLabelValues("toggle_category", "invalid").Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	role, err := h.roleService.ToggleCategory(c.Request().Context(), c.Param("id"), category, *req.Selected)
	metrics.RoleMutationsTotal.WithLabelValues("toggle_category", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

func mutationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrRoleConflict):
		return "conflict"
	case errors.Is(err, domain.ErrRoleNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrRoleInUse), errors.Is(err, domain.ErrRoleRenamed):
		return "in_use"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
