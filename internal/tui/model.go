// Package tui is the terminal front end of the vault: a login gate followed
// by the search terminal.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/securevault/vault-system/internal/core/domain"
	"github.com/securevault/vault-system/internal/core/ports"
	"github.com/securevault/vault-system/internal/core/terminal"
)

type gateFocus int

const (
	focusUsername gateFocus = iota
	focusPassword
)

// resolvedMsg carries a finished lookup back into the event loop.
type resolvedMsg struct {
	ticket  terminal.Ticket
	outcome domain.Outcome
}

// Model is the bubbletea model for the whole session.
type Model struct {
	auth   ports.Authenticator
	lookup ports.RecordLookup
	log    zerolog.Logger

	gate  terminal.GateState
	state *terminal.State

	username textinput.Model
	password textinput.Model
	query    textinput.Model
	focus    gateFocus

	keys   keyMap
	styles styles
}

// New returns a logged-out model.
func New(auth ports.Authenticator, lookup ports.RecordLookup, log zerolog.Logger) Model {
	username := textinput.New()
	username.Placeholder = "admin or user"
	username.Prompt = "› "
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "••••••••"
	password.Prompt = "› "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	query := textinput.New()
	query.Placeholder = "Enter search query..."
	query.Prompt = "› "
	query.CharLimit = 256

	return Model{
		auth:     auth,
		lookup:   lookup,
		log:      log,
		state:    terminal.New(),
		username: username,
		password: password,
		query:    query,
		keys:     defaultKeys(),
		styles:   defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg:
		if !m.state.Resolve(msg.ticket, msg.outcome) {
			m.log.Debug().Msg("dropped lookup result from a previous session")
			return m, nil
		}
		m.log.Info().Str("outcome", msg.outcome.Kind.String()).Int("status", msg.outcome.StatusCode).Msg("lookup settled")
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state.Authenticated() {
			return m.updateTerminal(msg)
		}
		return m.updateGate(msg)
	}
	return m, nil
}

func (m Model) updateGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
		return m.setGateFocus(1 - m.focus), nil

	case key.Matches(msg, m.keys.Submit):
		if m.focus == focusUsername && m.password.Value() == "" {
			return m.setGateFocus(focusPassword), nil
		}
		m.gate.Username = m.username.Value()
		m.gate.Password = m.password.Value()
		id, ok := m.gate.Attempt(m.auth)
		if !ok {
			m.log.Info().Str("username", m.username.Value()).Msg("login rejected")
			return m, nil
		}
		m.log.Info().Str("role", string(id.Role)).Msg("login accepted")
		m.state.Login(id)
		m.username.Reset()
		m.password.Reset()
		m.username.Blur()
		m.password.Blur()
		m.query.SetValue(m.state.Value())
		return m, m.query.Focus()
	}

	var cmd tea.Cmd
	if m.focus == focusUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) setGateFocus(f gateFocus) Model {
	m.focus = f
	if f == focusUsername {
		m.password.Blur()
		m.username.Focus()
	} else {
		m.username.Blur()
		m.password.Focus()
	}
	return m
}

func (m Model) updateTerminal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Logout):
		m.state.Logout()
		m.query.Reset()
		m.query.Blur()
		m.gate = terminal.GateState{}
		m.log.Info().Msg("session terminated")
		m = m.setGateFocus(focusUsername)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
		m.state.ToggleField()
		m.query.SetValue(m.state.Value())
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		ticket, err := m.state.Submit()
		switch {
		case errors.Is(err, domain.ErrSearchInFlight), errors.Is(err, domain.ErrMissingQuery):
			return m, nil
		case err != nil:
			m.log.Error().Err(err).Msg("submit failed")
			return m, nil
		}
		m.log.Info().Str("field", string(ticket.Request.Field)).Msg("lookup issued")
		return m, lookupCmd(m.lookup, ticket)
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if v := m.query.Value(); v != m.state.Value() {
		m.state.SetValue(v)
	}
	return m, cmd
}

// lookupCmd runs the call off the event loop. A panic in the transport is
// reported as a connection failure so loading is always released.
func lookupCmd(lookup ports.RecordLookup, t terminal.Ticket) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = resolvedMsg{ticket: t, outcome: domain.ConnectionFailure()}
			}
		}()
		return resolvedMsg{ticket: t, outcome: lookup.Lookup(context.Background(), t.Request)}
	}
}
