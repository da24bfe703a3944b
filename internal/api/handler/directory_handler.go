package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantry/admin-api/internal/core/ports"
)

// DirectoryHandler serves reads scoped to the caller's tenant. The tenant
// always comes from the session, never from the request.
type DirectoryHandler struct {
	directory ports.DirectoryService
}

func NewDirectoryHandler(directory ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// Users lists the users of the caller's tenant.
//
// @Summary  List tenant users
// @Tags     directory
// @Produce  json
// @Success  200  {array}   userResponse
// @Failure  401  {object}  errorResponse
// @Failure  403  {object}  errorResponse
// @Router   /api/users [get]
func (h *DirectoryHandler) Users(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	users, err := h.directory.ListUsers(c.Request().Context(), claims.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Tenant returns the caller's tenant.
//
// @Summary  Current tenant
// @Tags     directory
// @Produce  json
// @Success  200  {object}  domain.Tenant
// @Failure  401  {object}  errorResponse
// @Failure  404  {object}  errorResponse
// @Router   /api/tenant [get]
func (h *DirectoryHandler) Tenant(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	tenant, err := h.directory.Tenant(c.Request().Context(), claims.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}
