package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockoutKeyPrefix = "login:failures:"

// LoginLockout counts failed logins per email and refuses further attempts
// once maxFailures is reached, until the window opened by the first failure
// expires. Keys hold a hash of the normalized email, never the address.
type LoginLockout struct {
	client      redis.Cmdable
	maxFailures int
	window      time.Duration
}

// NewLoginLockout returns a lockout; maxFailures <= 0 disables it.
func NewLoginLockout(client redis.Cmdable, maxFailures int, window time.Duration) *LoginLockout {
	return &LoginLockout{client: client, maxFailures: maxFailures, window: window}
}

func (l *LoginLockout) Allow(ctx context.Context, email string) (bool, error) {
	if l.maxFailures <= 0 {
		return true, nil
	}
	n, err := l.client.Get(ctx, lockoutKey(email)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n < l.maxFailures, nil
}

func (l *LoginLockout) RecordFailure(ctx context.Context, email string) error {
	if l.maxFailures <= 0 {
		return nil
	}
	key := lockoutKey(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("lockout record: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("lockout expire: %w", err)
		}
	}
	return nil
}

func (l *LoginLockout) Reset(ctx context.Context, email string) error {
	if l.maxFailures <= 0 {
		return nil
	}
	if err := l.client.Del(ctx, lockoutKey(email)).Err(); err != nil {
		return fmt.Errorf("lockout reset: %w", err)
	}
	return nil
}

func lockoutKey(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return lockoutKeyPrefix + hex.EncodeToString(sum[:16])
}
