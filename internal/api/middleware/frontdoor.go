package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantry/admin-api/internal/api/cookie"
	"github.com/tenantry/admin-api/internal/api/metrics"
)

// FrontDoor gates requests by host and path before routing. Requests for a
// protected surface without a session cookie are redirected to login; only
// cookie presence is checked here, Session does the verification. Subdomain
// requests on bare paths are rewritten under their surface prefix.
//
// Register with Echo#Pre so the rewrite happens before route lookup.
func FrontDoor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			route := Classify(req.Host, path)

			if route.Protected() && !hasSessionCookie(c) {
				metrics.FrontDoorDecisionsTotal.WithLabelValues(string(route.Class), "redirect").Inc()
				return c.Redirect(http.StatusTemporaryRedirect, LoginRedirect(path))
			}

			if route.Rewritten {
				c.Set(originalPathKey, path)
				req.URL.Path = route.Path
				req.URL.RawPath = ""
				metrics.FrontDoorDecisionsTotal.WithLabelValues(string(route.Class), "rewrite").Inc()
				return next(c)
			}

			metrics.FrontDoorDecisionsTotal.WithLabelValues(string(route.Class), "pass").Inc()
			return next(c)
		}
	}
}

func hasSessionCookie(c echo.Context) bool {
	ck, err := c.Cookie(cookie.Name)
	return err == nil && ck.Value != ""
}
