package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tenantry/admin-api/internal/api/cookie"
	"github.com/tenantry/admin-api/internal/api/handler"
	"github.com/tenantry/admin-api/internal/api/middleware"
	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

const (
	permManageRoles = "roles.manage"
	permViewUsers   = "users.view"
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Auth      ports.AuthService
	Roles     ports.RoleService
	Directory ports.DirectoryService

	Cookies cookie.Policy
	Origins middleware.OriginAllowed

	LoginRatePerSecond float64
	LoginRateBurst     int

	// Readiness checks keyed by dependency name.
	Readiness map[string]handler.PingFunc

	// Registry for HTTP metrics. Defaults to the global Prometheus registry.
	Registry *prometheus.Registry

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Pre-routing ---
	e.Pre(echomiddleware.Recover())
	e.Pre(middleware.FrontDoor())

	// --- Global middleware ---
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(middleware.CORS(d.Origins))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Session(d.Auth, d.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookies, d.Log)
	roleHandler := handler.NewRoleHandler(d.Roles)
	directoryHandler := handler.NewDirectoryHandler(d.Directory)
	surfaceHandler := handler.NewSurfaceHandler()
	healthHandler := handler.NewHealthHandler(d.Readiness)

	// --- Entry point and surfaces ---
	e.GET("/", surfaceHandler.Root)
	for _, prefix := range []string{"/admin", "/customer"} {
		e.GET(prefix, surfaceHandler.Surface, middleware.RequireSurfaceSession())
		e.GET(prefix+"/*", surfaceHandler.Surface, middleware.RequireSurfaceSession())
	}

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login, middleware.RateLimit(d.LoginRatePerSecond, d.LoginRateBurst))
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, middleware.RequireSession())
	auth.GET("/health", authHandler.Health)

	// --- Protected API ---
	apiGroup := e.Group("/api", middleware.RequireSession())

	employeesOnly := middleware.RequireUserType(domain.UserTypeEmployee)
	manageRoles := middleware.RequirePermission(d.Roles, permManageRoles)

	roles := apiGroup.Group("/roles")
	roles.GET("", roleHandler.List, employeesOnly)
	roles.GET("/permissions", roleHandler.Permissions, employeesOnly)
	roles.GET("/:id", roleHandler.Get, employeesOnly)
	roles.GET("/:id/categories", roleHandler.Categories, employeesOnly)
	roles.POST("", roleHandler.Create, manageRoles)
	roles.PATCH("/:id", roleHandler.Update, manageRoles)
	roles.PUT("/:id/categories/:category", roleHandler.ToggleCategory, manageRoles)
	roles.DELETE("/:id", roleHandler.Delete, manageRoles)

	apiGroup.GET("/users", directoryHandler.Users, middleware.RequirePermission(d.Roles, permViewUsers))
	apiGroup.GET("/tenant", directoryHandler.Tenant)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request, at a level chosen by
// the response status.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Status >= 400:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
