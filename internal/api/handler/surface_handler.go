package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tenantry/admin-api/internal/api/middleware"
)

// SurfaceHandler answers the browser-facing entry points. The web client
// renders the pages; these handlers only confirm which surface and identity a
// request resolved to.
type SurfaceHandler struct{}

func NewSurfaceHandler() *SurfaceHandler {
	return &SurfaceHandler{}
}

// Root is the login entry point. It echoes the redirect hint left by the
// front door so the client can return there after login.
func (h *SurfaceHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, entryResponse{
		Service:  serviceName,
		Login:    "/auth/login",
		Redirect: c.QueryParam("redirect"),
	})
}

// Surface describes an authenticated admin or customer surface request.
func (h *SurfaceHandler) Surface(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	path := c.Request().URL.Path
	return c.JSON(http.StatusOK, surfaceResponse{
		Surface: surfaceOf(path),
		Path:    middleware.OriginalPath(c),
		User:    toIdentityResponse(claims),
	})
}

func surfaceOf(path string) string {
	seg := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	return seg
}
