package middleware

import (
	"net/url"
	"strings"
)

// RouteClass names the surface a request belongs to.
type RouteClass string

const (
	RouteRoot     RouteClass = "root"
	RouteAPI      RouteClass = "api"
	RouteAdmin    RouteClass = "admin"
	RouteCustomer RouteClass = "customer"
	RoutePublic   RouteClass = "public"
)

const (
	adminHostPrefix    = "admin."
	customerHostPrefix = "customer."
	adminPathPrefix    = "/admin"
	customerPathPrefix = "/customer"
)

// apiPrefixes handle their own authentication and are never rewritten.
var apiPrefixes = []string{"/api", "/auth", "/health", "/metrics", "/swagger"}

// Route is the outcome of classifying a request.
type Route struct {
	Class RouteClass
	// Path is the path to dispatch, equal to the input unless Rewritten.
	Path      string
	Rewritten bool
}

// Protected reports whether the route belongs to the admin or customer surface.
func (r Route) Protected() bool {
	return r.Class == RouteAdmin || r.Class == RouteCustomer
}

// Classify maps host and path to a route class and the path to dispatch.
// Either an admin./customer. host or an /admin or /customer path marks a
// protected surface; the host wins when both are present. A subdomain request
// on a bare path is rewritten under its surface prefix.
func Classify(host, path string) Route {
	if path == "" {
		path = "/"
	}
	if path == "/" {
		return Route{Class: RouteRoot, Path: path}
	}
	for _, p := range apiPrefixes {
		if hasSegmentPrefix(path, p) {
			return Route{Class: RouteAPI, Path: path}
		}
	}

	host = strings.ToLower(host)
	switch {
	case strings.HasPrefix(host, adminHostPrefix):
		return surfaceRoute(RouteAdmin, adminPathPrefix, path)
	case strings.HasPrefix(host, customerHostPrefix):
		return surfaceRoute(RouteCustomer, customerPathPrefix, path)
	case hasSegmentPrefix(path, adminPathPrefix):
		return Route{Class: RouteAdmin, Path: path}
	case hasSegmentPrefix(path, customerPathPrefix):
		return Route{Class: RouteCustomer, Path: path}
	}
	return Route{Class: RoutePublic, Path: path}
}

func surfaceRoute(class RouteClass, prefix, path string) Route {
	if hasSegmentPrefix(path, prefix) {
		return Route{Class: class, Path: path}
	}
	return Route{Class: class, Path: prefix + path, Rewritten: true}
}

// hasSegmentPrefix matches whole path segments: "/admin" and "/admin/x" match
// "/admin", "/administrator" does not.
func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// LoginRedirect is the login entry point carrying path as redirect hint.
func LoginRedirect(path string) string {
	return "/?redirect=" + strings.ReplaceAll(url.QueryEscape(path), "%2F", "/")
}
