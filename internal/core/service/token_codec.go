package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tenantry/admin-api/internal/core/domain"
)

const (
	// DefaultTokenTTL is the session lifetime when none is configured.
	DefaultTokenTTL = 24 * time.Hour

	tokenIssuer = "tenantry-admin-api"
)

// sessionClaims is the wire form of domain.IdentityClaims.
type sessionClaims struct {
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
	Type     string `json:"type"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec signs session tokens with HS256 using a process-wide secret.
type JWTCodec struct {
	secret    []byte
	now       func() time.Time
	parser    *jwt.Parser
	validator *jwt.Validator
}

// CodecOption customises a JWTCodec.
type CodecOption func(*JWTCodec)

// WithClock replaces the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *JWTCodec) { c.now = now }
}

// NewJWTCodec returns a codec keyed by secret.
func NewJWTCodec(secret string, opts ...CodecOption) (*JWTCodec, error) {
	if secret == "" {
		return nil, errors.New("token codec: signing secret is required")
	}
	c := &JWTCodec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	// Signature first, claims second.
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)
	c.validator = jwt.NewValidator(
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	return c, nil
}

// Issue signs claims with exp = now + ttl. A non-positive ttl falls back to
// DefaultTokenTTL.
func (c *JWTCodec) Issue(claims domain.IdentityClaims, ttl time.Duration) (domain.SessionToken, error) {
	if err := claims.Validate(); err != nil {
		return domain.SessionToken{}, fmt.Errorf("issue token: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	// NumericDate has whole-second precision. Issuing on a second boundary
	// keeps the reported iat and exp exact, with exp - iat == ttl.
	now := c.now().Truncate(time.Second)
	sc := sessionClaims{
		Email:    claims.Email,
		TenantID: claims.TenantID,
		Type:     string(claims.Type),
		Role:     claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sc).SignedString(c.secret)
	if err != nil {
		return domain.SessionToken{}, fmt.Errorf("sign token: %w", err)
	}

	return domain.SessionToken{
		Value:     signed,
		IssuedAt:  sc.IssuedAt.Time,
		ExpiresAt: sc.ExpiresAt.Time,
	}, nil
}

// Verify checks the signature first and expiry second.
func (c *JWTCodec) Verify(token string) (domain.IdentityClaims, error) {
	var sc sessionClaims
	_, err := c.parser.ParseWithClaims(token, &sc, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err == nil {
		err = c.validator.Validate(&sc)
	}
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.IdentityClaims{}, domain.ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.IdentityClaims{}, domain.ErrTokenExpired
	default:
		return domain.IdentityClaims{}, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}

	claims := domain.IdentityClaims{
		Subject:  sc.Subject,
		Email:    sc.Email,
		TenantID: sc.TenantID,
		Type:     domain.UserType(sc.Type),
		Role:     sc.Role,
	}
	if err := claims.Validate(); err != nil {
		return domain.IdentityClaims{}, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
	return claims, nil
}
