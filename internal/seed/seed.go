package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
	"github.com/tenantry/admin-api/internal/core/service"
	"github.com/tenantry/admin-api/internal/ids"
)

// Report summarizes one run.
type Report struct {
	TenantID     string
	Users        int
	RolesCreated int
	RolesKept    int
}

// Seeder writes fixtures through the repositories. Running it twice leaves
// the store unchanged: tenants match by subdomain, users by email and roles
// by name. Existing roles are never modified.
type Seeder struct {
	tenants ports.TenantRepository
	users   ports.UserRepository
	roles   ports.RoleService
	creds   *service.Credentials
	now     func() time.Time
	log     zerolog.Logger
}

func NewSeeder(
	tenants ports.TenantRepository,
	users ports.UserRepository,
	roles ports.RoleService,
	creds *service.Credentials,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{
		tenants: tenants,
		users:   users,
		roles:   roles,
		creds:   creds,
		now:     func() time.Time { return time.Now().UTC() },
		log:     log,
	}
}

// Run applies fx and reconciles role user counts afterwards.
func (s *Seeder) Run(ctx context.Context, fx *Fixtures) (*Report, error) {
	now := s.now()
	tenant := &domain.Tenant{
		ID:        ids.New(),
		Name:      fx.Tenant.Name,
		Subdomain: fx.Tenant.Subdomain,
		Settings:  fx.Tenant.Settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tenants.Upsert(ctx, tenant); err != nil {
		return nil, fmt.Errorf("seed tenant: %w", err)
	}
	report := &Report{TenantID: tenant.ID}
	s.log.Info().Str("tenant_id", tenant.ID).Str("subdomain", tenant.Subdomain).Msg("tenant seeded")

	hashes := make(map[string]string)
	for _, uf := range fx.Users {
		password := uf.Password
		if password == "" {
			password = fx.Password
		}
		hash, ok := hashes[password]
		if !ok {
			var err error
			if hash, err = s.creds.Hash(password); err != nil {
				return nil, fmt.Errorf("seed user %s: %w", uf.Email, err)
			}
			hashes[password] = hash
		}

		userType, err := domain.ParseUserType(uf.Type)
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", uf.Email, err)
		}
		user := &domain.User{
			ID:           ids.New(),
			FirstName:    uf.FirstName,
			LastName:     uf.LastName,
			Email:        uf.Email,
			Phone:        uf.Phone,
			PasswordHash: hash,
			TenantID:     tenant.ID,
			Type:         userType,
			Role:         domain.RoleKey(uf.Role),
			IsActive:     !uf.Inactive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Upsert(ctx, user); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", uf.Email, err)
		}
		report.Users++
	}

	for _, rf := range fx.Roles {
		created, err := s.ensureRole(ctx, rf)
		if err != nil {
			return nil, err
		}
		if created {
			report.RolesCreated++
		} else {
			report.RolesKept++
		}
	}

	if err := s.roles.ReconcileUserCounts(ctx); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	s.log.Info().
		Int("users", report.Users).
		Int("roles_created", report.RolesCreated).
		Int("roles_kept", report.RolesKept).
		Msg("seed complete")
	return report, nil
}

func (s *Seeder) ensureRole(ctx context.Context, rf RoleFixture) (bool, error) {
	_, err := s.roles.Create(ctx, ports.CreateRoleInput{
		Name:        rf.Name,
		Description: rf.Description,
		Permissions: domain.ExpandPermissionPatterns(rf.Permissions),
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrRoleConflict):
		return false, nil
	default:
		return false, fmt.Errorf("seed role %s: %w", rf.Name, err)
	}
}
