package ports

import (
	"context"

	"github.com/tenantry/admin-api/internal/core/domain"
)

type TenantRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	// Upsert inserts the tenant or replaces the record with the same subdomain.
	Upsert(ctx context.Context, tenant *domain.Tenant) error
}
