package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

func TestIPLimiters_PerIPBuckets(t *testing.T) {
	l := &ipLimiters{perSecond: rate.Limit(1), burst: 2, buckets: map[string]*ipLimiter{}}
	now := time.Now()

	if !l.allow("1.1.1.1", now) || !l.allow("1.1.1.1", now) {
		t.Fatalf("burst should be allowed")
	}
	if l.allow("1.1.1.1", now) {
		t.Fatalf("third request in the same instant must be limited")
	}
	if !l.allow("2.2.2.2", now) {
		t.Fatalf("other IPs have their own bucket")
	}
	if !l.allow("1.1.1.1", now.Add(time.Second)) {
		t.Fatalf("bucket should refill")
	}
}

func TestIPLimiters_SweepsIdleBuckets(t *testing.T) {
	l := &ipLimiters{perSecond: rate.Limit(1), burst: 1, buckets: map[string]*ipLimiter{}}
	now := time.Now()
	l.allow("1.1.1.1", now)
	l.allow("2.2.2.2", now.Add(limiterIdleTTL+2*time.Minute))

	if _, ok := l.buckets["1.1.1.1"]; ok {
		t.Fatalf("idle bucket should have been swept")
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(1, 1))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", codes)
	}
}

func TestRateLimit_DisabledWhenUnset(t *testing.T) {
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(0, 0))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}
