package domain

import (
	"errors"
	"time"
)

var (
	ErrTokenMalformed        = errors.New("session token malformed")
	ErrTokenInvalidSignature = errors.New("session token signature invalid")
	ErrTokenExpired          = errors.New("session token expired")
)

// IdentityClaims is the identity embedded in a session token. Values are
// immutable once issued; later changes to the user record do not affect them.
type IdentityClaims struct {
	Subject  string   `json:"id"`
	Email    string   `json:"email"`
	TenantID string   `json:"tenantId"`
	Type     UserType `json:"type"`
	Role     string   `json:"role"`
}

// Validate rejects claims with any missing field or an unknown user type.
func (c IdentityClaims) Validate() error {
	switch {
	case c.Subject == "":
		return errors.New("subject is required")
	case c.Email == "":
		return errors.New("email is required")
	case c.TenantID == "":
		return errors.New("tenant id is required")
	case c.Role == "":
		return errors.New("role is required")
	}
	if c.Type != UserTypeEmployee && c.Type != UserTypeCustomer {
		return ErrInvalidUserType
	}
	return nil
}

// SessionToken is a signed token together with its validity window.
type SessionToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
