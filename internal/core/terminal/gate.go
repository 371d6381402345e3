package terminal

import (
	"errors"

	"github.com/securevault/vault-system/internal/core/domain"
	"github.com/securevault/vault-system/internal/core/ports"
)

const (
	InvalidCredentialsMessage = "Invalid username or password. Please try again."
	MissingCredentialsMessage = "Username and password are required."
)

// GateState is the login form.
type GateState struct {
	Username string
	Password string
	Error    string
}

// Attempt checks the typed credentials. On success the form is cleared and
// the identity returned; on failure only the visible error changes.
func (g *GateState) Attempt(auth ports.Authenticator) (domain.Identity, bool) {
	id, err := auth.Authenticate(g.Username, g.Password)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredentials) {
			g.Error = MissingCredentialsMessage
		} else {
			g.Error = InvalidCredentialsMessage
		}
		return domain.Identity{}, false
	}
	*g = GateState{}
	return id, true
}
