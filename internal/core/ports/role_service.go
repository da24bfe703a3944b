package ports

import (
	"context"

	"github.com/tenantry/admin-api/internal/core/domain"
)

// CreateRoleInput carries the fields of a new role. Unknown permission ids
// are dropped.
type CreateRoleInput struct {
	Name        string
	Description string
	Permissions []string
}

// UpdateRoleInput is a partial update. Nil fields are left untouched; a
// non-nil Permissions replaces the whole set.
type UpdateRoleInput struct {
	Name        *string
	Description *string
	Permissions *[]string
	IsActive    *bool
}

// CategoryState reports how much of one category a role covers.
type CategoryState struct {
	Category  domain.PermissionCategory `json:"category"`
	Label     string                    `json:"label"`
	Selection domain.CategorySelection  `json:"selection"`
}

type RoleService interface {
	List(ctx context.Context) ([]*domain.Role, error)
	Get(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, in CreateRoleInput) (*domain.Role, error)
	Update(ctx context.Context, id string, in UpdateRoleInput) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
	ListPermissions() []domain.Permission
	CategoryStates(ctx context.Context, id string) ([]CategoryState, error)
	ToggleCategory(ctx context.Context, id string, category domain.PermissionCategory, selected bool) (*domain.Role, error)
	// PermissionsForKey resolves a user's role key to the permissions it
	// grants. Unknown and inactive roles grant nothing.
	PermissionsForKey(ctx context.Context, roleKey string) (domain.PermissionSet, error)
	ReconcileUserCounts(ctx context.Context) error
}
