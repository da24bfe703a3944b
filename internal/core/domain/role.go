package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleConflict = errors.New("role with this name already exists")
	ErrRoleInUse    = errors.New("cannot delete role that is assigned to users")
	ErrRoleRenamed  = errors.New("cannot rename role that is assigned to users")
)

// Role is a named, mutable subset of the permission catalog.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
	IsActive    bool         `json:"isActive"`
	UserCount   int          `json:"userCount"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Key is the identifier users reference the role by, see RoleKey.
func (r *Role) Key() string {
	return RoleKey(r.Name)
}

// PermissionIDs lists the ids of the role's permissions.
func (r *Role) PermissionIDs() []string {
	ids := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		ids[i] = p.ID
	}
	return ids
}

// PermissionSet returns the role's permissions as a set.
func (r *Role) PermissionSet() PermissionSet {
	return NewPermissionSet(r.PermissionIDs()...)
}

// RoleKey normalizes a role name into the key stored on user records:
// "Customer Service" becomes "customer_service".
func RoleKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// SameRoleName compares role names case-insensitively.
func SameRoleName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
