package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tenantry/admin-api/internal/core/domain"
)

type stubTenantRepo struct {
	tenants map[string]*domain.Tenant
}

func (r *stubTenantRepo) FindByID(_ context.Context, id string) (*domain.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	return t, nil
}

func (r *stubTenantRepo) Upsert(_ context.Context, t *domain.Tenant) error {
	r.tenants[t.ID] = t
	return nil
}

func TestDirectoryService_ListUsersIsTenantScoped(t *testing.T) {
	users := newStubUserRepo(
		&domain.User{ID: "u1", Email: "a@example.com", TenantID: "t1"},
		&domain.User{ID: "u2", Email: "b@example.com", TenantID: "t2"},
	)
	svc := NewDirectoryService(users, &stubTenantRepo{tenants: map[string]*domain.Tenant{}})

	got, err := svc.ListUsers(context.Background(), "t1")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(got) != 1 || got[0].ID != "u1" {
		t.Fatalf("expected only u1, got %+v", got)
	}
}

func TestDirectoryService_TenantNotFound(t *testing.T) {
	svc := NewDirectoryService(newStubUserRepo(), &stubTenantRepo{tenants: map[string]*domain.Tenant{}})

	_, err := svc.Tenant(context.Background(), "missing")
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}
