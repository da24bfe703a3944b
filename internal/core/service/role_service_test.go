package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubRoleRepo struct {
	roles     map[string]*domain.Role
	updateErr error
	deleted   []string
}

func newStubRoleRepo(roles ...*domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for _, role := range roles {
		r.roles[role.ID] = role
	}
	return r
}

func cloneRole(r *domain.Role) *domain.Role {
	cp := *r
	cp.Permissions = append([]domain.Permission{}, r.Permissions...)
	return &cp
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, cloneRole(role))
	}
	return out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return cloneRole(role), nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if strings.EqualFold(role.Name, name) {
			return cloneRole(role), nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) error {
	r.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.roles[role.ID] = cloneRole(role)
	return nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id string) error {
	delete(r.roles, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubRoleRepo) SetUserCount(_ context.Context, id string, count int) error {
	role, ok := r.roles[id]
	if !ok {
		return domain.ErrRoleNotFound
	}
	role.UserCount = count
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func perms(ids ...string) []domain.Permission {
	return domain.FilterPermissions(ids)
}

func newTestRoleService(roles *stubRoleRepo, users *stubUserRepo) ports.RoleService {
	if users == nil {
		users = newStubUserRepo()
	}
	return NewRoleService(roles, users, zerolog.Nop())
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Create / Update / Delete
// ---------------------------------------------------------------------------

func TestRoleService_Create_FiltersUnknownPermissions(t *testing.T) {
	svc := newTestRoleService(newStubRoleRepo(), nil)

	role, err := svc.Create(context.Background(), ports.CreateRoleInput{
		Name:        "Viewer",
		Description: "Read-only access",
		Permissions: []string{"users.view", "bogus.permission"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if ids := role.PermissionIDs(); len(ids) != 1 || ids[0] != "users.view" {
		t.Fatalf("expected only users.view, got %v", ids)
	}
	if !role.IsActive || role.UserCount != 0 || role.ID == "" {
		t.Fatalf("unexpected initial state: %+v", role)
	}
}

func TestRoleService_Create_NameConflictIgnoresCase(t *testing.T) {
	svc := newTestRoleService(newStubRoleRepo(&domain.Role{ID: "r1", Name: "admin"}), nil)

	_, err := svc.Create(context.Background(), ports.CreateRoleInput{Name: "Admin", Description: "Duplicate admin"})
	if !errors.Is(err, domain.ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict, got %v", err)
	}
}

func TestRoleService_Create_RequiresName(t *testing.T) {
	svc := newTestRoleService(newStubRoleRepo(), nil)

	_, err := svc.Create(context.Background(), ports.CreateRoleInput{Name: "   "})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoleService_Update_ReplacesPermissions(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Manager", Permissions: perms("orders.view", "orders.edit")})
	svc := newTestRoleService(repo, nil)

	newPerms := []string{"reports.view", "nope"}
	role, err := svc.Update(context.Background(), "r1", ports.UpdateRoleInput{Permissions: &newPerms})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if ids := role.PermissionIDs(); len(ids) != 1 || ids[0] != "reports.view" {
		t.Fatalf("expected permissions to be replaced, got %v", ids)
	}
}

func TestRoleService_Update_EmptyPermissionsClearsSet(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Manager", Permissions: perms("orders.view")})
	svc := newTestRoleService(repo, nil)

	empty := []string{}
	role, err := svc.Update(context.Background(), "r1", ports.UpdateRoleInput{Permissions: &empty})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(role.Permissions) != 0 {
		t.Fatalf("expected no permissions, got %v", role.PermissionIDs())
	}
}

func TestRoleService_Update_RenameConflict(t *testing.T) {
	repo := newStubRoleRepo(
		&domain.Role{ID: "r1", Name: "Admin"},
		&domain.Role{ID: "r2", Name: "Manager"},
	)
	svc := newTestRoleService(repo, nil)

	_, err := svc.Update(context.Background(), "r2", ports.UpdateRoleInput{Name: strPtr("ADMIN")})
	if !errors.Is(err, domain.ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict, got %v", err)
	}
}

func TestRoleService_Update_RenameSelfChangingCase(t *testing.T) {
	svc := newTestRoleService(newStubRoleRepo(&domain.Role{ID: "r1", Name: "admin"}), nil)

	role, err := svc.Update(context.Background(), "r1", ports.UpdateRoleInput{Name: strPtr("Admin")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if role.Name != "Admin" {
		t.Fatalf("expected rename, got %q", role.Name)
	}
}

func TestRoleService_Update_NotFound(t *testing.T) {
	svc := newTestRoleService(newStubRoleRepo(), nil)

	_, err := svc.Update(context.Background(), "missing", ports.UpdateRoleInput{Description: strPtr("x")})
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestRoleService_Delete_RefusedWhileAssigned(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Admin", UserCount: 1})
	svc := newTestRoleService(repo, nil)

	err := svc.Delete(context.Background(), "r1")
	if !errors.Is(err, domain.ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
	if len(repo.deleted) != 0 || repo.roles["r1"].UserCount != 1 {
		t.Fatalf("role must be left untouched")
	}
}

func TestRoleService_Delete_Unassigned(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Temp"})
	svc := newTestRoleService(repo, nil)

	if err := svc.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	roles, _ := svc.List(context.Background())
	if len(roles) != 0 {
		t.Fatalf("deleted role still listed: %+v", roles)
	}
}

func TestRoleService_Create_RoleKeyCollision(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Customer Service"})
	svc := newTestRoleService(repo, nil)

	_, err := svc.Create(context.Background(), ports.CreateRoleInput{
		Name:        "customer_service",
		Description: "Same key as an existing role",
	})
	if !errors.Is(err, domain.ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict, got %v", err)
	}
	if len(repo.roles) != 1 {
		t.Fatalf("no role must be stored, got %d", len(repo.roles))
	}
}

func TestRoleService_Update_RenameOntoExistingKey(t *testing.T) {
	repo := newStubRoleRepo(
		&domain.Role{ID: "r1", Name: "Customer Service"},
		&domain.Role{ID: "r2", Name: "Support"},
	)
	svc := newTestRoleService(repo, nil)

	_, err := svc.Update(context.Background(), "r2", ports.UpdateRoleInput{Name: strPtr("customer   service")})
	if !errors.Is(err, domain.ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict, got %v", err)
	}
}

func TestRoleService_Update_RenameRefusedWhileHeld(t *testing.T) {
	// userCount is stale: the user was assigned after the last reconcile.
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Admin", IsActive: true, Permissions: perms("roles.manage")})
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "paul@admin.com", Role: "admin"})
	svc := newTestRoleService(repo, users)

	_, err := svc.Update(context.Background(), "r1", ports.UpdateRoleInput{Name: strPtr("Administrator")})
	if !errors.Is(err, domain.ErrRoleRenamed) {
		t.Fatalf("expected ErrRoleRenamed, got %v", err)
	}
	if repo.roles["r1"].Name != "Admin" {
		t.Fatalf("role must keep its name, got %q", repo.roles["r1"].Name)
	}

	set, err := svc.PermissionsForKey(context.Background(), "admin")
	if err != nil || !set.Has("roles.manage") {
		t.Fatalf("holders must keep roles.manage, got %v (%v)", set.IDs(), err)
	}
	if err := svc.ReconcileUserCounts(context.Background()); err != nil {
		t.Fatalf("ReconcileUserCounts: %v", err)
	}
	if repo.roles["r1"].UserCount != 1 {
		t.Fatalf("expected userCount 1, got %d", repo.roles["r1"].UserCount)
	}
}

func TestRoleService_Update_HeldRoleKeepsKey(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "customer service", UserCount: 2})
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "support@example.com", Role: "customer_service"})
	svc := newTestRoleService(repo, users)

	role, err := svc.Update(context.Background(), "r1", ports.UpdateRoleInput{
		Name:        strPtr("Customer Service"),
		Description: strPtr("Handles customer enquiries"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if role.Name != "Customer Service" || role.Key() != "customer_service" {
		t.Fatalf("unexpected role %q key %q", role.Name, role.Key())
	}
}

func TestRoleService_Update_RenameUnheldRole(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Temp"})
	svc := newTestRoleService(repo, nil)

	role, err := svc.Update(context.Background(), "r1", ports.UpdateRoleInput{Name: strPtr("Auditor")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if role.Key() != "auditor" {
		t.Fatalf("expected key auditor, got %q", role.Key())
	}
}

func TestRoleService_Delete_RefusedWhenCountIsStale(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Warehouse", UserCount: 0})
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "warehouse@example.com", Role: "warehouse"})
	svc := newTestRoleService(repo, users)

	err := svc.Delete(context.Background(), "r1")
	if !errors.Is(err, domain.ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatal("role must not be deleted")
	}
}

// ---------------------------------------------------------------------------
// Categories and permission resolution
// ---------------------------------------------------------------------------

func TestRoleService_CategoryStatesAndToggle(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "r1", Name: "Reporter", Permissions: perms("reports.view")})
	svc := newTestRoleService(repo, nil)

	states, err := svc.CategoryStates(context.Background(), "r1")
	if err != nil {
		t.Fatalf("CategoryStates: %v", err)
	}
	got := map[domain.PermissionCategory]domain.CategorySelection{}
	for _, s := range states {
		got[s.Category] = s.Selection
	}
	if got[domain.CategoryReports] != domain.SelectionPartial || got[domain.CategoryUserManagement] != domain.SelectionNone {
		t.Fatalf("unexpected states: %v", got)
	}

	role, err := svc.ToggleCategory(context.Background(), "r1", domain.CategoryReports, true)
	if err != nil {
		t.Fatalf("ToggleCategory: %v", err)
	}
	if role.PermissionSet().CategoryState(domain.CategoryReports) != domain.SelectionFull {
		t.Fatalf("expected reports fully selected, got %v", role.PermissionIDs())
	}

	if _, err := svc.ToggleCategory(context.Background(), "r1", "billing", true); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
}

func TestRoleService_PermissionsForKey(t *testing.T) {
	repo := newStubRoleRepo(
		&domain.Role{ID: "r1", Name: "Customer Service", IsActive: true, Permissions: perms("customers.view")},
		&domain.Role{ID: "r2", Name: "Warehouse", IsActive: false, Permissions: perms("inventory.view")},
	)
	svc := newTestRoleService(repo, nil)

	set, err := svc.PermissionsForKey(context.Background(), "customer_service")
	if err != nil || !set.Has("customers.view") {
		t.Fatalf("expected customers.view, got %v (%v)", set.IDs(), err)
	}

	set, _ = svc.PermissionsForKey(context.Background(), "warehouse")
	if len(set) != 0 {
		t.Fatalf("inactive role must grant nothing, got %v", set.IDs())
	}

	set, _ = svc.PermissionsForKey(context.Background(), "ghost")
	if len(set) != 0 {
		t.Fatalf("unknown role must grant nothing, got %v", set.IDs())
	}
}

func TestRoleService_ReconcileUserCounts(t *testing.T) {
	roles := newStubRoleRepo(
		&domain.Role{ID: "r1", Name: "Admin", UserCount: 5},
		&domain.Role{ID: "r2", Name: "Manager", UserCount: 0},
	)
	users := newStubUserRepo(
		&domain.User{ID: "u1", Email: "a@example.com", Role: "admin"},
		&domain.User{ID: "u2", Email: "b@example.com", Role: "manager"},
		&domain.User{ID: "u3", Email: "c@example.com", Role: "manager"},
	)
	svc := newTestRoleService(roles, users)

	if err := svc.ReconcileUserCounts(context.Background()); err != nil {
		t.Fatalf("ReconcileUserCounts: %v", err)
	}
	if roles.roles["r1"].UserCount != 1 || roles.roles["r2"].UserCount != 2 {
		t.Fatalf("unexpected counts: admin=%d manager=%d", roles.roles["r1"].UserCount, roles.roles["r2"].UserCount)
	}
}

func TestRoleService_ListPermissions(t *testing.T) {
	svc := newTestRoleService(newStubRoleRepo(), nil)
	if got := len(svc.ListPermissions()); got != 22 {
		t.Fatalf("expected full catalog, got %d", got)
	}
}
