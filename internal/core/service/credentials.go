package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest work factor accepted for password hashes.
const MinBcryptCost = 10

// Credentials hashes and verifies passwords with bcrypt.
type Credentials struct {
	cost int
}

// NewCredentials returns a Credentials using cost, raised to MinBcryptCost
// when lower.
func NewCredentials(cost int) *Credentials {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Credentials{cost: cost}
}

// Hash produces a salted bcrypt hash of plain.
func (c *Credentials) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches storedHash. The comparison is
// constant-time; a malformed hash never matches.
func (c *Credentials) Verify(plain, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}
