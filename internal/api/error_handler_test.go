package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "email is required"), 422, "email is required"},
		{"credentials", domain.ErrInvalidCredentials, 401, "invalid credentials"},
		{"expired token", fmt.Errorf("verify: %w", domain.ErrTokenExpired), 401, "unauthorized"},
		{"throttled", domain.ErrTooManyAttempts, 429, "too many login attempts, try again later"},
		{"role missing", fmt.Errorf("get role: %w", domain.ErrRoleNotFound), 404, "role not found"},
		{"role name taken", domain.ErrRoleConflict, 409, "role with this name already exists"},
		{"role in use", domain.ErrRoleInUse, 409, "cannot delete role that is assigned to users"},
		{"held role renamed", fmt.Errorf("update role: %w", domain.ErrRoleRenamed), 409, "cannot rename role that is assigned to users"},
		{"tenant missing", domain.ErrTenantNotFound, 404, "tenant not found"},
		{"unknown", errors.New("mongo: connection reset"), 500, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}
