package ports

import (
	"context"

	"github.com/tenantry/admin-api/internal/core/domain"
)

// DirectoryService exposes tenant-scoped reads of users and tenants.
type DirectoryService interface {
	ListUsers(ctx context.Context, tenantID string) ([]*domain.User, error)
	Tenant(ctx context.Context, tenantID string) (*domain.Tenant, error)
}
