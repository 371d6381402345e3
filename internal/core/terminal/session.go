package terminal

import (
	"context"

	"github.com/securevault/vault-system/internal/core/domain"
	"github.com/securevault/vault-system/internal/core/ports"
)

// Session runs submit and resolve back to back against a lookup. The TUI
// splits the two across its event loop instead; Session serves callers that
// can block.
type Session struct {
	State  *State
	Lookup ports.RecordLookup
}

// Search submits the current form and waits for the outcome. Loading is
// always left cleared, even if the lookup panics.
func (s *Session) Search(ctx context.Context) (outcome domain.Outcome, err error) {
	t, err := s.State.Submit()
	if err != nil {
		return domain.Outcome{}, err
	}

	outcome = domain.ConnectionFailure()
	defer func() {
		s.State.Resolve(t, outcome)
	}()

	outcome = s.Lookup.Lookup(ctx, t.Request)
	return outcome, nil
}
