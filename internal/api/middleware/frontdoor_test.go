package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tenantry/admin-api/internal/api/cookie"
)

func newFrontDoorEcho(hit *string) *echo.Echo {
	e := echo.New()
	e.Pre(FrontDoor())
	record := func(c echo.Context) error {
		*hit = c.Request().URL.Path + "|" + OriginalPath(c)
		return c.NoContent(http.StatusOK)
	}
	e.GET("/", record)
	e.GET("/admin/*", record)
	e.GET("/customer/*", record)
	e.GET("/api/*", record)
	return e
}

func TestFrontDoor_RedirectsWithoutCookie(t *testing.T) {
	var hit string
	e := newFrontDoorEcho(&hit)

	req := httptest.NewRequest(http.MethodGet, "/admin/settings/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/?redirect=/admin/settings/users" {
		t.Fatalf("unexpected location %q", loc)
	}
	if hit != "" {
		t.Fatalf("handler must not run")
	}
}

func TestFrontDoor_SubdomainRedirectKeepsOriginalPath(t *testing.T) {
	var hit string
	e := newFrontDoorEcho(&hit)

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Host = "admin.appname.com"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/?redirect=/settings" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestFrontDoor_PresenceOnlyThenRewrite(t *testing.T) {
	var hit string
	e := newFrontDoorEcho(&hit)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Host = "customer.appname.com"
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "not-even-a-jwt"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if hit != "/customer/orders|/orders" {
		t.Fatalf("unexpected dispatch %q", hit)
	}
}

func TestFrontDoor_RootAndAPIPassUntouched(t *testing.T) {
	for _, path := range []string{"/", "/api/roles"} {
		var hit string
		e := newFrontDoorEcho(&hit)

		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Host = "admin.appname.com"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || hit != path+"|"+path {
			t.Fatalf("%s: expected untouched pass-through, got %d %q", path, rec.Code, hit)
		}
	}
}
