package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestOriginMatcher(t *testing.T) {
	allowed := NewOriginMatcher([]string{"http://localhost:3000", "http://localhost:3001"}, "appname.com")

	for _, origin := range []string{
		"http://localhost:3000",
		"http://localhost:3001",
		"https://appname.com",
		"http://appname.com",
		"https://admin.appname.com",
		"https://a.b.appname.com",
	} {
		if !allowed(origin) {
			t.Errorf("expected %q to be allowed", origin)
		}
	}
	for _, origin := range []string{
		"http://localhost:4000",
		"https://evilappname.com",
		"https://appname.com.evil.io",
		"ftp://appname.com",
		"",
	} {
		if allowed(origin) {
			t.Errorf("expected %q to be rejected", origin)
		}
	}
}

func TestCORS_PreflightWithCredentials(t *testing.T) {
	e := echo.New()
	e.Use(CORS(NewOriginMatcher([]string{"http://localhost:3000"}, "appname.com")))
	e.POST("/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set(echo.HeaderOrigin, "https://admin.appname.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "https://admin.appname.com" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowCredentials) != "true" {
		t.Fatalf("expected credentials to be allowed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("disallowed origin must not be echoed, got %q", got)
	}
}
