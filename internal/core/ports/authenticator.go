package ports

import "github.com/securevault/vault-system/internal/core/domain"

// Authenticator turns a username/password pair into an Identity.
type Authenticator interface {
	Authenticate(username, password string) (domain.Identity, error)
}
