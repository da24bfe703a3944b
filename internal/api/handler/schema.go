package handler

import (
	"time"

	"github.com/tenantry/admin-api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// identityResponse is the public view of a session identity.
type identityResponse struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	Type     domain.UserType `json:"type"`
	Role     string          `json:"role"`
	TenantID string          `json:"tenantId"`
}

type loginResponse struct {
	User    identityResponse `json:"user"`
	Message string           `json:"message"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// --- Roles ---

type createRoleRequest struct {
	Name        string   `json:"name"        validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"required,min=10,max=500"`
	Permissions []string `json:"permissions" validate:"required"`
}

type updateRoleRequest struct {
	Name        *string   `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string   `json:"description" validate:"omitempty,min=10,max=500"`
	Permissions *[]string `json:"permissions"`
	IsActive    *bool     `json:"isActive"`
}

type toggleCategoryRequest struct {
	Selected *bool `json:"selected" validate:"required"`
}

// --- Directory ---

type userResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Type      domain.UserType `json:"type"`
	Role      string          `json:"role"`
	TenantID  string          `json:"tenantId"`
	IsActive  bool            `json:"isActive"`
	LastLogin *time.Time      `json:"lastLogin,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// --- Surfaces ---

type surfaceResponse struct {
	Surface string           `json:"surface"`
	Path    string           `json:"path"`
	User    identityResponse `json:"user"`
}

type entryResponse struct {
	Service  string `json:"service"`
	Login    string `json:"login"`
	Redirect string `json:"redirect,omitempty"`
}
