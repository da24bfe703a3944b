package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
	"github.com/tenantry/admin-api/internal/ids"
)

type roleService struct {
	roles ports.RoleRepository
	users ports.UserRepository
	now   func() time.Time
	log   zerolog.Logger
}

// NewRoleService returns a RoleService implementation. users supplies live
// assignment counts for reconciling, deleting and renaming.
func NewRoleService(roles ports.RoleRepository, users ports.UserRepository, log zerolog.Logger) ports.RoleService {
	return &roleService{
		roles: roles,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
		log:   log,
	}
}

func (s *roleService) List(ctx context.Context) ([]*domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (s *roleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

func (s *roleService) Create(ctx context.Context, in ports.CreateRoleInput) (*domain.Role, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("create role: %w: name is required", domain.ErrInvalidInput)
	}
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	now := s.now()
	role := &domain.Role{
		ID:          ids.New(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Permissions: domain.FilterPermissions(in.Permissions),
		IsActive:    true,
		UserCount:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.log.Info().Str("role_id", role.ID).Str("name", role.Name).Int("permissions", len(role.Permissions)).Msg("role created")
	return role, nil
}

func (s *roleService) Update(ctx context.Context, id string, in ports.UpdateRoleInput) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("update role: %w: name must not be empty", domain.ErrInvalidInput)
		}
		if err := s.ensureNameFree(ctx, name, role.ID); err != nil {
			return nil, fmt.Errorf("update role: %w", err)
		}
		// Users reference the role by key, so a key change would detach them.
		if domain.RoleKey(name) != role.Key() {
			n, err := s.assignedUsers(ctx, role)
			if err != nil {
				return nil, fmt.Errorf("update role: %w", err)
			}
			if n > 0 {
				return nil, fmt.Errorf("update role: %w (%d users)", domain.ErrRoleRenamed, n)
			}
		}
		role.Name = name
	}
	if in.Description != nil {
		role.Description = strings.TrimSpace(*in.Description)
	}
	if in.Permissions != nil {
		role.Permissions = domain.FilterPermissions(*in.Permissions)
	}
	if in.IsActive != nil {
		role.IsActive = *in.IsActive
	}
	role.UpdatedAt = s.now()

	if err := s.roles.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	s.log.Info().Str("role_id", role.ID).Msg("role updated")
	return role, nil
}

// Delete refuses roles that are still assigned to users.
func (s *roleService) Delete(ctx context.Context, id string) error {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	n, err := s.assignedUsers(ctx, role)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("delete role: %w (%d users)", domain.ErrRoleInUse, n)
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	s.log.Info().Str("role_id", id).Str("name", role.Name).Msg("role deleted")
	return nil
}

func (s *roleService) ListPermissions() []domain.Permission {
	return domain.Catalog()
}

func (s *roleService) CategoryStates(ctx context.Context, id string) ([]ports.CategoryState, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("category states: %w", err)
	}

	set := role.PermissionSet()
	states := make([]ports.CategoryState, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		states = append(states, ports.CategoryState{
			Category:  c,
			Label:     c.Label(),
			Selection: set.CategoryState(c),
		})
	}
	return states, nil
}

func (s *roleService) ToggleCategory(ctx context.Context, id string, category domain.PermissionCategory, selected bool) (*domain.Role, error) {
	if _, err := domain.ParseCategory(string(category)); err != nil {
		return nil, fmt.Errorf("toggle category: %w: %v", domain.ErrInvalidInput, err)
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle category: %w", err)
	}

	set := role.PermissionSet()
	set.ToggleCategory(category, selected)
	role.Permissions = set.Permissions()
	role.UpdatedAt = s.now()

	if err := s.roles.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("toggle category: %w", err)
	}
	return role, nil
}

func (s *roleService) PermissionsForKey(ctx context.Context, roleKey string) (domain.PermissionSet, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve permissions: %w", err)
	}
	for _, r := range roles {
		if r.Key() != roleKey {
			continue
		}
		if !r.IsActive {
			return domain.NewPermissionSet(), nil
		}
		return r.PermissionSet(), nil
	}
	return domain.NewPermissionSet(), nil
}

// ReconcileUserCounts recomputes every role's userCount from the user store.
func (s *roleService) ReconcileUserCounts(ctx context.Context) error {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return fmt.Errorf("reconcile user counts: %w", err)
	}

	var errs []error
	for _, r := range roles {
		n, err := s.users.CountByRole(ctx, r.Key())
		if err != nil {
			errs = append(errs, fmt.Errorf("count %s: %w", r.Key(), err))
			continue
		}
		if n == r.UserCount {
			continue
		}
		if err := s.roles.SetUserCount(ctx, r.ID, n); err != nil {
			errs = append(errs, fmt.Errorf("set count %s: %w", r.Key(), err))
			continue
		}
		s.log.Debug().Str("role_id", r.ID).Int("from", r.UserCount).Int("to", n).Msg("role user count reconciled")
	}
	if len(errs) > 0 {
		return fmt.Errorf("reconcile user counts: %w", errors.Join(errs...))
	}
	return nil
}

// assignedUsers is the larger of the stored userCount and a live count, so
// a stale counter never lets a held role be deleted or rekeyed.
func (s *roleService) assignedUsers(ctx context.Context, role *domain.Role) (int, error) {
	n, err := s.users.CountByRole(ctx, role.Key())
	if err != nil {
		return 0, fmt.Errorf("count users of %s: %w", role.Key(), err)
	}
	return max(n, role.UserCount), nil
}

// ensureNameFree fails with ErrRoleConflict when a role other than selfID
// already uses name case-insensitively, or maps to the same role key.
func (s *roleService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.roles.FindByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrRoleNotFound):
	case err != nil:
		return err
	case existing.ID != selfID:
		return domain.ErrRoleConflict
	}

	roles, err := s.roles.List(ctx)
	if err != nil {
		return err
	}
	key := domain.RoleKey(name)
	for _, r := range roles {
		if r.ID != selfID && r.Key() == key {
			return domain.ErrRoleConflict
		}
	}
	return nil
}
