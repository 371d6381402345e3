// Package terminal holds the view state of the login gate and the search
// terminal as plain values with explicit transitions. Nothing here performs
// I/O; the TUI drives the transitions and renders the result.
package terminal

import (
	"strings"

	"github.com/securevault/vault-system/internal/core/domain"
)

// MissingValueMessage is shown under the form when submit is pressed with an
// empty input.
const MissingValueMessage = "A search value is required."

// Ticket identifies one submitted lookup. A ticket issued before a logout is
// stale and its outcome is dropped.
type Ticket struct {
	Request    domain.SearchRequest
	generation uint64
}

// State is the search terminal. The zero value is a logged-out terminal with
// the account id selector active.
type State struct {
	identity     *domain.Identity
	field        domain.SearchField
	accountID    string
	customerName string
	loading      bool
	outcome      domain.Outcome
	validation   string
	generation   uint64
}

// New returns a logged-out terminal.
func New() *State {
	return &State{field: domain.FieldAccountID}
}

// Login hands an identity produced by the gate to the terminal.
func (s *State) Login(id domain.Identity) {
	s.identity = &id
}

// Identity returns the held identity, if any.
func (s *State) Identity() (domain.Identity, bool) {
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *State) Authenticated() bool { return s.identity != nil }

// Field returns the active search mode.
func (s *State) Field() domain.SearchField {
	if s.field == "" {
		return domain.FieldAccountID
	}
	return s.field
}

// SelectField switches the search mode. The other mode's value is kept.
func (s *State) SelectField(f domain.SearchField) {
	if f == domain.FieldName {
		f = domain.FieldCustomerName
	}
	if f != domain.FieldAccountID && f != domain.FieldCustomerName {
		return
	}
	s.field = f
}

// ToggleField flips between account id and customer name.
func (s *State) ToggleField() {
	s.field = s.Field().Other()
}

// Value returns the input bound to the active field.
func (s *State) Value() string {
	return s.ValueOf(s.Field())
}

// ValueOf returns the input for f regardless of the active mode.
func (s *State) ValueOf(f domain.SearchField) string {
	if f == domain.FieldAccountID {
		return s.accountID
	}
	return s.customerName
}

// SetValue writes the input of the active field.
func (s *State) SetValue(v string) {
	if s.Field() == domain.FieldAccountID {
		s.accountID = v
	} else {
		s.customerName = v
	}
	s.validation = ""
}

func (s *State) Loading() bool           { return s.loading }
func (s *State) Outcome() domain.Outcome { return s.outcome }

// Validation returns the form-level message, empty when the input is fine.
func (s *State) Validation() string { return s.validation }

// Submit starts a lookup for the active field. It clears the previous outcome
// and enters loading. The returned ticket must be passed back to Resolve.
// No ticket is issued while a lookup is in flight, without an identity, or
// for a blank value.
func (s *State) Submit() (Ticket, error) {
	if s.identity == nil {
		return Ticket{}, domain.ErrNoIdentity
	}
	if s.loading {
		return Ticket{}, domain.ErrSearchInFlight
	}
	value := s.Value()
	if strings.TrimSpace(value) == "" {
		s.validation = MissingValueMessage
		return Ticket{}, domain.ErrMissingQuery
	}

	s.validation = ""
	s.outcome = domain.Outcome{}
	s.loading = true

	return Ticket{
		Request: domain.SearchRequest{
			Field: s.Field(),
			Value: value,
			Role:  s.identity.Role,
		},
		generation: s.generation,
	}, nil
}

// Resolve records the outcome of the lookup identified by t and leaves
// loading. It reports false, changing nothing, when t was issued before the
// last logout.
func (s *State) Resolve(t Ticket, o domain.Outcome) bool {
	if t.generation != s.generation {
		return false
	}
	s.loading = false
	s.outcome = o
	return true
}

// Logout drops the identity, the outcome and both inputs. Lookups still in
// flight become stale.
func (s *State) Logout() {
	s.generation++
	s.identity = nil
	s.field = domain.FieldAccountID
	s.accountID = ""
	s.customerName = ""
	s.loading = false
	s.outcome = domain.Outcome{}
	s.validation = ""
}
