package service

import (
	"github.com/securevault/vault-system/internal/core/domain"
)

type credential struct {
	password string
	identity domain.Identity
}

// Gate is the session gate: a fixed two-entry allow-list compared in plain
// text. It is a membership check for the terminal, not a security boundary.
type Gate struct {
	table map[string]credential
}

// NewGate returns a Gate loaded with the built-in credential table.
func NewGate() *Gate {
	return &Gate{table: map[string]credential{
		"admin": {password: "password123", identity: domain.Identity{DisplayName: "Admin", Role: domain.RoleAdmin}},
		"user":  {password: "user123", identity: domain.Identity{DisplayName: "Standard User", Role: domain.RoleUser}},
	}}
}

// Authenticate returns the identity for an exact username/password match.
func (g *Gate) Authenticate(username, password string) (domain.Identity, error) {
	if username == "" || password == "" {
		return domain.Identity{}, domain.ErrMissingCredentials
	}

	c, ok := g.table[username]
	if !ok || c.password != password {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return c.identity, nil
}
