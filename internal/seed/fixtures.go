// Package seed loads the default tenant, accounts and roles into a store.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tenantry/admin-api/internal/core/domain"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures describes what Run writes.
type Fixtures struct {
	Tenant   TenantFixture `yaml:"tenant"`
	Password string        `yaml:"password"`
	Users    []UserFixture `yaml:"users"`
	Roles    []RoleFixture `yaml:"roles"`
}

type TenantFixture struct {
	Name      string         `yaml:"name"`
	Subdomain string         `yaml:"subdomain"`
	Settings  map[string]any `yaml:"settings"`
}

type UserFixture struct {
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Type      string `yaml:"type"`
	Role      string `yaml:"role"`
	// Password overrides the shared fixture password.
	Password string `yaml:"password"`
	// Inactive accounts are seeded but cannot log in.
	Inactive bool `yaml:"inactive"`
}

type RoleFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Permissions []string `yaml:"permissions"`
}

// Default returns the embedded fixtures.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// Parse decodes fixtures, rejecting unknown keys.
func Parse(data []byte) (*Fixtures, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := fx.validate(); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fx, nil
}

func (fx *Fixtures) validate() error {
	if fx.Tenant.Subdomain == "" {
		return errors.New("tenant subdomain is required")
	}
	for i, u := range fx.Users {
		if u.Email == "" {
			return fmt.Errorf("user %d: email is required", i)
		}
		if _, err := domain.ParseUserType(u.Type); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		if u.Password == "" && fx.Password == "" {
			return fmt.Errorf("user %s: no password", u.Email)
		}
	}
	for i, r := range fx.Roles {
		if r.Name == "" {
			return fmt.Errorf("role %d: name is required", i)
		}
	}
	return nil
}
