package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	db *sql.DB
}

const userColumns = `id, first_name, last_name, email, phone, password_hash, tenant_id,
	type, role, is_active, last_login, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		userType  string
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.TenantID, &userType, &u.Role, &u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Type = domain.UserType(userType)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `select `+userColumns+` from users where email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `select `+userColumns+` from users where id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `select `+userColumns+` from users where tenant_id = $1 order by email`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, roleKey string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `select count(*) from users where role = $1`, roleKey).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// Upsert matches on email. An existing row keeps its id and created_at;
// user.ID is updated to the stored id.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) error {
	var lastLogin sql.NullTime
	if u.LastLogin != nil {
		lastLogin = sql.NullTime{Time: *u.LastLogin, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, `
		insert into users (id, first_name, last_name, email, phone, password_hash, tenant_id,
			type, role, is_active, last_login, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		on conflict (email) do update set
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			phone = excluded.phone,
			password_hash = excluded.password_hash,
			tenant_id = excluded.tenant_id,
			type = excluded.type,
			role = excluded.role,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
		returning id
	`, u.ID, u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash, u.TenantID,
		string(u.Type), u.Role, u.IsActive, lastLogin, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
