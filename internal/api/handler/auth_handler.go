package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/api/cookie"
	"github.com/tenantry/admin-api/internal/api/metrics"
	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

const serviceName = "auth-api"

type AuthHandler struct {
	authService ports.AuthService
	cookies     cookie.Policy
	log         zerolog.Logger
	now         func() time.Time
}

func NewAuthHandler(authService ports.AuthService, cookies cookie.Policy, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		log:         log,
		now:         time.Now,
	}
}

// Login verifies credentials and sets the session cookie.
//
// @Summary      Login
// @Description  Verifies email and password. On success the session token is
// @Description  set as an HttpOnly cookie and never returned in the body.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse  "Malformed body"
// @Failure      401   {object}  errorResponse  "Invalid credentials"
// @Failure      422   {object}  errorResponse  "Validation error"
// @Failure      429   {object}  errorResponse  "Too many attempts"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.LoginDuration)
	defer timer.ObserveDuration()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(res.Claims.Type)).Inc()
	c.SetCookie(h.cookies.Issue(res.Token.Value))

	return c.JSON(http.StatusOK, loginResponse{
		User:    toIdentityResponse(res.Claims),
		Message: "Login successful",
	})
}

// Logout clears the session cookie. It succeeds with or without a session.
//
// @Summary  Logout
// @Tags     auth
// @Produce  json
// @Success  200  {object}  messageResponse
// @Router   /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookies.Clear())
	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}

// Me returns the identity carried by the session cookie.
//
// @Summary  Current identity
// @Tags     auth
// @Produce  json
// @Success  200  {object}  identityResponse
// @Failure  401  {object}  errorResponse
// @Router   /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIdentityResponse(claims))
}

// Health is the unauthenticated liveness probe of the auth API.
//
// @Summary  Auth liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  healthResponse
// @Router   /auth/health [get]
func (h *AuthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Service:   serviceName,
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
