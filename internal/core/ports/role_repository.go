package ports

import (
	"context"

	"github.com/tenantry/admin-api/internal/core/domain"
)

// RoleRepository persists roles. Implementations store permission ids only
// and rebuild the catalog entries on read, dropping ids no longer known.
//
// Create and Update must return domain.ErrRoleConflict when another role
// already holds the same name compared case-insensitively.
type RoleRepository interface {
	List(ctx context.Context) ([]*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id string) error
	SetUserCount(ctx context.Context, id string, count int) error
}
