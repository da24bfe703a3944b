package service

import (
	"context"
	"fmt"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

type directoryService struct {
	users   ports.UserRepository
	tenants ports.TenantRepository
}

// NewDirectoryService returns a DirectoryService. Callers pass the tenant id
// taken from the verified claims.
func NewDirectoryService(users ports.UserRepository, tenants ports.TenantRepository) ports.DirectoryService {
	return &directoryService{users: users, tenants: tenants}
}

func (s *directoryService) ListUsers(ctx context.Context, tenantID string) ([]*domain.User, error) {
	users, err := s.users.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *directoryService) Tenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}
