// Package memory holds map-backed repositories used by tests and local
// tooling. Records are copied on the way in and out so callers never share
// state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

var (
	_ ports.UserRepository   = (*UserRepository)(nil)
	_ ports.TenantRepository = (*TenantRepository)(nil)
	_ ports.RoleRepository   = (*RoleRepository)(nil)
)

// ── Users ─────────────────────────────────────────────────────────────────────

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // by id
}

func NewUserRepository(seed ...*domain.User) *UserRepository {
	r := &UserRepository{users: make(map[string]*domain.User)}
	for _, u := range seed {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) ListByTenant(_ context.Context, tenantID string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.User, 0)
	for _, u := range r.users {
		if u.TenantID == tenantID {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepository) CountByRole(_ context.Context, roleKey string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, u := range r.users {
		if domain.RoleKey(u.Role) == roleKey {
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) Upsert(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Email == user.Email && id != user.ID {
			delete(r.users, id)
			user.ID = id
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		cp.LastLogin = &t
	}
	return &cp
}

// ── Tenants ───────────────────────────────────────────────────────────────────

type TenantRepository struct {
	mu      sync.RWMutex
	tenants map[string]*domain.Tenant
}

func NewTenantRepository(seed ...*domain.Tenant) *TenantRepository {
	r := &TenantRepository{tenants: make(map[string]*domain.Tenant)}
	for _, t := range seed {
		r.tenants[t.ID] = cloneTenant(t)
	}
	return r
}

func (r *TenantRepository) FindByID(_ context.Context, id string) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	return cloneTenant(t), nil
}

func (r *TenantRepository) Upsert(_ context.Context, tenant *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tenants {
		if t.Subdomain == tenant.Subdomain && id != tenant.ID {
			delete(r.tenants, id)
			tenant.ID = id
		}
	}
	r.tenants[tenant.ID] = cloneTenant(tenant)
	return nil
}

func cloneTenant(t *domain.Tenant) *domain.Tenant {
	cp := *t
	if t.Settings != nil {
		cp.Settings = make(map[string]any, len(t.Settings))
		for k, v := range t.Settings {
			cp.Settings[k] = v
		}
	}
	return &cp
}

// ── Roles ─────────────────────────────────────────────────────────────────────

type RoleRepository struct {
	mu    sync.RWMutex
	roles map[string]*domain.Role
}

func NewRoleRepository(seed ...*domain.Role) *RoleRepository {
	r := &RoleRepository{roles: make(map[string]*domain.Role)}
	for _, role := range seed {
		r.roles[role.ID] = cloneRole(role)
	}
	return r
}

func (r *RoleRepository) List(_ context.Context) ([]*domain.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, cloneRole(role))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *RoleRepository) FindByID(_ context.Context, id string) (*domain.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return cloneRole(role), nil
}

func (r *RoleRepository) FindByName(_ context.Context, name string) (*domain.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if role := r.byNameLocked(name); role != nil {
		return cloneRole(role), nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *RoleRepository) Create(_ context.Context, role *domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byNameLocked(role.Name) != nil {
		return domain.ErrRoleConflict
	}
	r.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *RoleRepository) Update(_ context.Context, role *domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[role.ID]; !ok {
		return domain.ErrRoleNotFound
	}
	if other := r.byNameLocked(role.Name); other != nil && other.ID != role.ID {
		return domain.ErrRoleConflict
	}
	r.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *RoleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *RoleRepository) SetUserCount(_ context.Context, id string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok {
		return domain.ErrRoleNotFound
	}
	role.UserCount = count
	return nil
}

func (r *RoleRepository) byNameLocked(name string) *domain.Role {
	for _, role := range r.roles {
		if domain.SameRoleName(role.Name, name) {
			return role
		}
	}
	return nil
}

func cloneRole(role *domain.Role) *domain.Role {
	cp := *role
	cp.Permissions = make([]domain.Permission, len(role.Permissions))
	copy(cp.Permissions, role.Permissions)
	return &cp
}
