// Package cookie decides how the session token travels between browser and
// server.
package cookie

import (
	"net/http"
	"time"
)

// Name is the session cookie name.
const Name = "session-token"

// DefaultMaxAge matches the default session token lifetime.
const DefaultMaxAge = 24 * time.Hour

// Options are the attributes a session cookie is set with.
type Options struct {
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string
	MaxAge   time.Duration
	Path     string
}

// Policy derives cookie attributes from the environment. MaxAge must be the
// token TTL so cookie and token expire together.
type Policy struct {
	Production bool
	Domain     string
	MaxAge     time.Duration
}

// Options returns the attributes for setting the session cookie. Domain is
// only set in production and only when configured; otherwise the cookie is
// bound to the exact request host.
func (p Policy) Options() Options {
	maxAge := p.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	opts := Options{
		HTTPOnly: true,
		Secure:   p.Production,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
		Path:     "/",
	}
	if p.Production && p.Domain != "" {
		opts.Domain = p.Domain
	}
	return opts
}

// Issue builds the Set-Cookie value carrying token.
func (p Policy) Issue(token string) *http.Cookie {
	o := p.Options()
	return &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   int(o.MaxAge / time.Second),
		Expires:  time.Now().Add(o.MaxAge),
		HttpOnly: o.HTTPOnly,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	}
}

// Clear builds a Set-Cookie that deletes the session cookie. It mirrors the
// attributes of Issue, domain included, since browsers ignore a deletion
// whose attributes do not match the stored cookie.
func (p Policy) Clear() *http.Cookie {
	o := p.Options()
	return &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: o.HTTPOnly,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	}
}
