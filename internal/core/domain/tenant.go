package domain

import (
	"errors"
	"time"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Tenant is an organizational partition. Subdomain is unique.
type Tenant struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Subdomain string         `json:"subdomain"`
	Settings  map[string]any `json:"settings"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
