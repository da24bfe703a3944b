package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/tenantry/admin-api/internal/core/domain"
)

const (
	claimsKey       = "identity"
	originalPathKey = "frontdoor.original_path"
)

type claimsContextKey struct{}

// ClaimsFrom returns the verified identity attached by Session.
func ClaimsFrom(c echo.Context) (domain.IdentityClaims, bool) {
	claims, ok := c.Get(claimsKey).(domain.IdentityClaims)
	return claims, ok
}

// ClaimsFromContext returns the verified identity from a request context, for
// code below the HTTP layer.
func ClaimsFromContext(ctx context.Context) (domain.IdentityClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(domain.IdentityClaims)
	return claims, ok
}

// SetClaims attaches a verified identity to the request.
func SetClaims(c echo.Context, claims domain.IdentityClaims) {
	c.Set(claimsKey, claims)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), claimsContextKey{}, claims)))
}

// OriginalPath is the path before any front door rewrite.
func OriginalPath(c echo.Context) string {
	if p, ok := c.Get(originalPathKey).(string); ok {
		return p
	}
	return c.Request().URL.Path
}
