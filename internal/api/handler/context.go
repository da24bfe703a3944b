package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantry/admin-api/internal/api/middleware"
	"github.com/tenantry/admin-api/internal/core/domain"
)

// identity returns the verified claims attached by the session guard. Routes
// are registered behind RequireSession, so a miss means the handler was wired
// without it; answer 401 rather than acting on an empty identity.
func identity(c echo.Context) (domain.IdentityClaims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.IdentityClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return claims, nil
}
