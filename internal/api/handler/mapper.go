package handler

import (
	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateRoleInput(req createRoleRequest) ports.CreateRoleInput {
	return ports.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	}
}

func toUpdateRoleInput(req updateRoleRequest) ports.UpdateRoleInput {
	return ports.UpdateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
	}
}

// --- Domain → Response ---

func toIdentityResponse(c domain.IdentityClaims) identityResponse {
	return identityResponse{
		ID:       c.Subject,
		Email:    c.Email,
		Type:     c.Type,
		Role:     c.Role,
		TenantID: c.TenantID,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Type:      u.Type,
		Role:      u.Role,
		TenantID:  u.TenantID,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
