package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

var _ ports.TenantRepository = (*TenantRepository)(nil)

type TenantRepository struct {
	db *sql.DB
}

func (r *TenantRepository) FindByID(ctx context.Context, id string) (*domain.Tenant, error) {
	var (
		t           domain.Tenant
		rawSettings []byte
	)
	err := r.db.QueryRowContext(ctx, `
		select id, name, subdomain, settings, created_at, updated_at
		from tenants
		where id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Subdomain, &rawSettings, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	t.Settings = map[string]any{}
	if len(rawSettings) > 0 {
		if err := json.Unmarshal(rawSettings, &t.Settings); err != nil {
			return nil, fmt.Errorf("decode tenant settings: %w", err)
		}
	}
	return &t, nil
}

// Upsert matches on subdomain; tenant.ID is updated to the stored id.
func (r *TenantRepository) Upsert(ctx context.Context, t *domain.Tenant) error {
	settings := []byte("{}")
	if len(t.Settings) > 0 {
		b, err := json.Marshal(t.Settings)
		if err != nil {
			return fmt.Errorf("marshal tenant settings: %w", err)
		}
		settings = b
	}

	err := r.db.QueryRowContext(ctx, `
		insert into tenants (id, name, subdomain, settings, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6)
		on conflict (subdomain) do update set
			name = excluded.name,
			settings = excluded.settings,
			updated_at = excluded.updated_at
		returning id
	`, t.ID, t.Name, t.Subdomain, settings, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("upsert tenant: %w", err)
	}
	return nil
}
