package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/api/cookie"
	"github.com/tenantry/admin-api/internal/api/metrics"
	"github.com/tenantry/admin-api/internal/core/domain"
)

// Authenticator verifies a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.IdentityClaims, error)
}

// Session resolves the session cookie into an identity. It never rejects a
// request: a missing or invalid cookie leaves the request unauthenticated and
// the cookie untouched. Routes that need an identity add RequireSession.
func Session(auth Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(cookie.Name)
			if err != nil || ck.Value == "" {
				return next(c)
			}

			claims, err := auth.Authenticate(c.Request().Context(), ck.Value)
			if err != nil {
				metrics.SessionChecksTotal.WithLabelValues(sessionResult(err)).Inc()
				log.Debug().Err(err).Str("path", c.Request().URL.Path).Msg("session cookie rejected")
				return next(c)
			}

			metrics.SessionChecksTotal.WithLabelValues("valid").Inc()
			SetClaims(c, claims)
			return next(c)
		}
	}
}

// RequireSession rejects unauthenticated requests with 401.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := ClaimsFrom(c); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			return next(c)
		}
	}
}

// RequireSurfaceSession sends unauthenticated browsers to the login entry
// point instead of answering 401, keeping the requested path as redirect hint.
func RequireSurfaceSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := ClaimsFrom(c); !ok {
				return c.Redirect(http.StatusTemporaryRedirect, LoginRedirect(OriginalPath(c)))
			}
			return next(c)
		}
	}
}

func sessionResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
