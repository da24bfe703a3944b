package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/core/domain"
	"github.com/tenantry/admin-api/internal/core/ports"
)

// LoginThrottle limits repeated failed logins for one email (Redis).
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthOptions tunes an AuthService. Throttle may be nil.
type AuthOptions struct {
	TokenTTL time.Duration
	Throttle LoginThrottle
}

type authService struct {
	users     ports.UserRepository
	creds     *Credentials
	codec     ports.TokenCodec
	ttl       time.Duration
	throttle  LoginThrottle
	dummyHash string
	log       zerolog.Logger
}

// NewAuthService returns an AuthService implementation.
func NewAuthService(
	users ports.UserRepository,
	creds *Credentials,
	codec ports.TokenCodec,
	opts AuthOptions,
	log zerolog.Logger,
) ports.AuthService {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	// Unknown and inactive accounts are checked against this hash so every
	// attempt pays the same bcrypt cost.
	dummy, err := creds.Hash(uuid.NewString())
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare dummy password hash")
	}

	return &authService{
		users:     users,
		creds:     creds,
		codec:     codec,
		ttl:       ttl,
		throttle:  opts.Throttle,
		dummyHash: dummy,
		log:       log,
	}
}

// Login verifies the password before any token is issued.
func (s *authService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if !allowed {
			s.log.Info().Str("email_hash", emailHash(email)).Msg("login throttled")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("login: %w", err)
	}

	if user == nil || !user.IsActive {
		s.creds.Verify(password, s.dummyHash)
		return nil, s.reject(ctx, email, "unknown or inactive user")
	}
	if !s.creds.Verify(password, user.PasswordHash) {
		return nil, s.reject(ctx, email, "password mismatch")
	}

	userType, err := domain.ParseUserType(string(user.Type))
	if err != nil {
		return nil, fmt.Errorf("login: user %s: %w", user.ID, err)
	}
	claims := user.Claims()
	claims.Type = userType

	token, err := s.codec.Issue(claims, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	s.log.Info().
		Str("user_id", claims.Subject).
		Str("tenant_id", claims.TenantID).
		Str("type", string(claims.Type)).
		Msg("login succeeded")

	return &ports.LoginResult{Claims: claims, Token: token}, nil
}

func (s *authService) Authenticate(_ context.Context, token string) (domain.IdentityClaims, error) {
	return s.codec.Verify(token)
}

func (s *authService) reject(ctx context.Context, email, reason string) error {
	s.log.Info().Str("email_hash", emailHash(email)).Str("reason", reason).Msg("login rejected")
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	return domain.ErrInvalidCredentials
}

// emailHash keeps addresses out of logs and throttle keys.
func emailHash(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:8])
}
