package ports

import (
	"context"

	"github.com/tenantry/admin-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Claims domain.IdentityClaims
	Token  domain.SessionToken
}

type AuthService interface {
	// Login fails with domain.ErrInvalidCredentials for an unknown email, an
	// inactive user or a wrong password alike.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Authenticate verifies a session token and returns its claims.
	Authenticate(ctx context.Context, token string) (domain.IdentityClaims, error)
}
