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

var _ ports.RoleRepository = (*RoleRepository)(nil)

// RoleRepository keeps permission ids as a JSON array. Name uniqueness comes
// from the unique index on lower(name).
type RoleRepository struct {
	db *sql.DB
}

const roleColumns = `id, name, description, permissions, is_active, user_count, created_at, updated_at`

func scanRole(row rowScanner) (*domain.Role, error) {
	var (
		r     domain.Role
		perms []byte
	)
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &perms, &r.IsActive, &r.UserCount, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	var ids []string
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &ids); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
	}
	r.Permissions = domain.FilterPermissions(ids)
	return &r, nil
}

func encodePermissions(r *domain.Role) ([]byte, error) {
	ids := r.PermissionIDs()
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `select `+roleColumns+` from roles order by lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	return r.findOne(ctx, `select `+roleColumns+` from roles where id = $1`, id)
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, `select `+roleColumns+` from roles where lower(name) = lower(trim($1))`, name)
}

func (r *RoleRepository) findOne(ctx context.Context, query, arg string) (*domain.Role, error) {
	role, err := scanRole(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find role: %w", err)
	}
	return role, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	perms, err := encodePermissions(role)
	if err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		insert into roles (id, name, description, permissions, is_active, user_count, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
	`, role.ID, role.Name, role.Description, perms, role.IsActive, role.UserCount, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoleConflict
		}
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

// Update writes every mutable field except user_count.
func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	perms, err := encodePermissions(role)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		update roles
		set name = $2, description = $3, permissions = $4, is_active = $5, updated_at = $6
		where id = $1
	`, role.ID, role.Name, role.Description, perms, role.IsActive, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoleConflict
		}
		return fmt.Errorf("update role: %w", err)
	}
	return expectOneRow(res)
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `delete from roles where id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return expectOneRow(res)
}

func (r *RoleRepository) SetUserCount(ctx context.Context, id string, count int) error {
	res, err := r.db.ExecContext(ctx, `update roles set user_count = $2 where id = $1`, id, count)
	if err != nil {
		return fmt.Errorf("set user count: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}
