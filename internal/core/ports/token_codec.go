package ports

import (
	"time"

	"github.com/tenantry/admin-api/internal/core/domain"
)

// TokenCodec issues and verifies signed session tokens.
type TokenCodec interface {
	Issue(claims domain.IdentityClaims, ttl time.Duration) (domain.SessionToken, error)
	// Verify returns domain.ErrTokenMalformed, domain.ErrTokenInvalidSignature
	// or domain.ErrTokenExpired on failure.
	Verify(token string) (domain.IdentityClaims, error)
}
