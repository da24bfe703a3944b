package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/tenantry/admin-api/internal/api/metrics"
)

const limiterIdleTTL = 5 * time.Minute

type ipLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiters holds one token bucket per client IP. Idle buckets are swept at
// most once per minute, on access.
type ipLimiters struct {
	mu        sync.Mutex
	perSecond rate.Limit
	burst     int
	buckets   map[string]*ipLimiter
	lastSweep time.Time
}

func (l *ipLimiters) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > time.Minute {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > limiterIdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &ipLimiter{lim: rate.NewLimiter(l.perSecond, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// RateLimit applies a per-IP token bucket. Non-positive settings disable it.
func RateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 || burst <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	limiters := &ipLimiters{
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		buckets:   make(map[string]*ipLimiter),
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			if !limiters.allow(ip, time.Now()) {
				metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
