package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantry/admin-api/internal/core/domain"
)

// PermissionResolver maps a role key to the permissions it grants.
type PermissionResolver interface {
	PermissionsForKey(ctx context.Context, roleKey string) (domain.PermissionSet, error)
}

// RequireUserType allows only identities of the given user types.
func RequireUserType(types ...domain.UserType) echo.MiddlewareFunc {
	allowed := make(map[domain.UserType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if _, ok := allowed[claims.Type]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequirePermission allows only identities whose role grants permission.
func RequirePermission(resolver PermissionResolver, permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			granted, err := resolver.PermissionsForKey(c.Request().Context(), claims.Role)
			if err != nil {
				return err
			}
			if !granted.Has(permission) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
