package ports

import (
	"context"

	"github.com/tenantry/admin-api/internal/core/domain"
)

// UserRepository defines the persistence operations the auth core and the
// directory reads depend on.
type UserRepository interface {
	// FindByEmail matches the email exactly as stored.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.User, error)
	// CountByRole counts users whose role key equals roleKey.
	CountByRole(ctx context.Context, roleKey string) (int, error)
	// Upsert inserts the user or replaces the record with the same email.
	Upsert(ctx context.Context, user *domain.User) error
}
