package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// OriginAllowed reports whether origin may send credentialed requests: an
// exact entry of origins, or http(s) on appDomain or any of its subdomains.
type OriginAllowed func(origin string) bool

// NewOriginMatcher builds the allow-list check.
func NewOriginMatcher(origins []string, appDomain string) OriginAllowed {
	exact := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			exact[o] = struct{}{}
		}
	}

	var domainRe *regexp.Regexp
	if appDomain = strings.TrimSpace(appDomain); appDomain != "" {
		domainRe = regexp.MustCompile(`^https?://([a-z0-9-]+\.)*` + regexp.QuoteMeta(strings.ToLower(appDomain)) + `$`)
	}

	return func(origin string) bool {
		if _, ok := exact[origin]; ok {
			return true
		}
		return domainRe != nil && domainRe.MatchString(strings.ToLower(origin))
	}
}

// CORS allows credentialed cross-origin requests from the allow-list only.
func CORS(allowed OriginAllowed) echo.MiddlewareFunc {
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return allowed(origin), nil
		},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderCookie},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
