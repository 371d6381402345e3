package domain

import (
	"errors"
	"strings"
)

// Role is the access level a client declares for itself.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrNoIdentity         = errors.New("no identity held")
)

// ParseRole normalises a client-supplied role string. Anything that is not
// "admin" after trimming and lowercasing is treated as RoleUser.
func ParseRole(s string) Role {
	if Role(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Privileged reports whether the role receives disclosed record data.
func (r Role) Privileged() bool {
	return r == RoleAdmin
}

// Identity is the authenticated operator for the lifetime of a session.
type Identity struct {
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}
