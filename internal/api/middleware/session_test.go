package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/api/cookie"
	"github.com/tenantry/admin-api/internal/core/domain"
)

type stubAuthenticator struct {
	claims domain.IdentityClaims
	err    error
	calls  int
}

func (a *stubAuthenticator) Authenticate(_ context.Context, _ string) (domain.IdentityClaims, error) {
	a.calls++
	return a.claims, a.err
}

var employee = domain.IdentityClaims{
	Subject: "user-1", Email: "admin@example.com", TenantID: "tenant-1",
	Type: domain.UserTypeEmployee, Role: "admin",
}

func runSession(t *testing.T, auth Authenticator, withCookie bool, guards ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, *domain.IdentityClaims) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "tok"})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.IdentityClaims
	handler := func(c echo.Context) error {
		if claims, ok := ClaimsFrom(c); ok {
			seen = &claims
			if fromCtx, ok := ClaimsFromContext(c.Request().Context()); !ok || fromCtx != claims {
				t.Fatalf("claims missing from request context")
			}
		}
		return c.NoContent(http.StatusOK)
	}
	for i := len(guards) - 1; i >= 0; i-- {
		handler = guards[i](handler)
	}
	handler = Session(auth, zerolog.Nop())(handler)

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestSession_ValidCookieAttachesClaims(t *testing.T) {
	rec, seen := runSession(t, &stubAuthenticator{claims: employee}, true, RequireSession())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || *seen != employee {
		t.Fatalf("expected claims to be attached, got %+v", seen)
	}
}

func TestSession_NoCookieSkipsVerification(t *testing.T) {
	auth := &stubAuthenticator{claims: employee}
	rec, seen := runSession(t, auth, false)
	if rec.Code != http.StatusOK || seen != nil {
		t.Fatalf("expected anonymous pass-through, got %d %+v", rec.Code, seen)
	}
	if auth.calls != 0 {
		t.Fatalf("authenticator must not be called without a cookie")
	}
}

func TestSession_RejectedTokensAreUnauthenticated(t *testing.T) {
	for _, err := range []error{domain.ErrTokenExpired, domain.ErrTokenInvalidSignature, domain.ErrTokenMalformed} {
		rec, seen := runSession(t, &stubAuthenticator{err: err}, true, RequireSession())
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", err, rec.Code)
		}
		if seen != nil {
			t.Fatalf("%v: claims must not be exposed", err)
		}
		if rec.Header().Get("Set-Cookie") != "" {
			t.Fatalf("%v: guard must not clear the cookie", err)
		}
	}
}

func TestRequireSurfaceSession_Redirects(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/settings/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSurfaceSession()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/?redirect=/admin/settings/users" {
		t.Fatalf("unexpected location %q", loc)
	}
}
