package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UserType separates back-office staff from tenant customers.
type UserType string

const (
	UserTypeEmployee UserType = "employee"
	UserTypeCustomer UserType = "customer"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

// ParseUserType accepts any casing ("EMPLOYEE", "Customer") and returns the
// canonical lower-case type.
func ParseUserType(s string) (UserType, error) {
	switch t := UserType(strings.ToLower(strings.TrimSpace(s))); t {
	case UserTypeEmployee, UserTypeCustomer:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUserType, s)
	}
}

// User is the stored account record. Email is unique across all tenants.
type User struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	PasswordHash string     `json:"-"`
	TenantID     string     `json:"tenantId"`
	Type         UserType   `json:"type"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Name joins the first and last name, skipping empty parts.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Claims builds the identity carried by a session token for this user.
func (u *User) Claims() IdentityClaims {
	return IdentityClaims{
		Subject:  u.ID,
		Email:    u.Email,
		TenantID: u.TenantID,
		Type:     u.Type,
		Role:     u.Role,
	}
}
