package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/securevault/vault-system/internal/core/domain"
	"github.com/securevault/vault-system/internal/core/terminal"
)

func (m Model) View() string {
	if !m.state.Authenticated() {
		return m.gateView()
	}
	return m.terminalView()
}

func (m Model) gateView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("SecureVault Login") + "\n")
	b.WriteString(m.styles.Subtitle.Render("Enter your credentials to access the vault") + "\n\n")

	b.WriteString(m.styles.Label.Render("Username") + "\n")
	b.WriteString(m.username.View() + "\n\n")
	b.WriteString(m.styles.Label.Render("Password") + "\n")
	b.WriteString(m.password.View() + "\n\n")

	if m.gate.Error != "" {
		b.WriteString(m.styles.Error.Render(m.gate.Error) + "\n\n")
	}

	b.WriteString(m.styles.Button.Render("SIGN IN") + "\n\n")
	b.WriteString(m.styles.Help.Render("tab switch field • enter sign in • ctrl+c quit"))

	return m.styles.Frame.Render(b.String())
}

func (m Model) terminalView() string {
	id, _ := m.state.Identity()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("USER: %s   ACCESS_LEVEL: %s",
		strings.ToUpper(id.DisplayName), strings.ToUpper(string(id.Role)))) + "\n\n")
	b.WriteString(m.styles.Title.Render("SECURE VAULT") + "\n")
	b.WriteString(m.styles.Subtitle.Render("Database Access Terminal") + "\n\n")

	b.WriteString(m.styles.Label.Render("SEARCH BY") + "  " + m.selector() + "\n\n")
	b.WriteString(m.styles.Label.Render(strings.ToUpper(m.state.Field().Label())) + "\n")
	b.WriteString(m.query.View() + "\n")
	if v := m.state.Validation(); v != "" {
		b.WriteString(m.styles.Validation.Render(v) + "\n")
	}
	b.WriteString("\n")

	if m.state.Loading() {
		b.WriteString(m.styles.Disabled.Render("DECRYPTING...") + "\n")
	} else {
		b.WriteString(m.styles.Button.Render("SEARCH DATABASE") + "\n")
	}

	if result := m.resultView(terminal.Render(m.state.Outcome())); result != "" {
		b.WriteString("\n" + result + "\n")
	}

	b.WriteString("\n" + m.styles.Help.Render("[ TERMINATE_SESSION_LOGOUT ] ctrl+x") + "\n")
	b.WriteString(m.styles.Help.Render("tab switch mode • enter search • ctrl+c quit"))

	return m.styles.Frame.Render(b.String())
}

func (m Model) selector() string {
	opts := []domain.SearchField{domain.FieldAccountID, domain.FieldCustomerName}
	parts := make([]string, 0, len(opts))
	for _, f := range opts {
		if f == m.state.Field() {
			parts = append(parts, m.styles.Selected.Render(f.Label()))
		} else {
			parts = append(parts, m.styles.Subtitle.Render(f.Label()))
		}
	}
	return strings.Join(parts, " / ")
}

func (m Model) resultView(v terminal.ResultView) string {
	switch v.Kind {
	case terminal.ViewError:
		return m.styles.Error.Render("! " + v.Headline)
	case terminal.ViewNotFound:
		return m.styles.NotFound.Render("✗ " + v.Headline)
	case terminal.ViewDisclosed, terminal.ViewRestricted:
		lines := []string{m.styles.Success.Render("✓ " + v.Headline)}
		width := 0
		for _, r := range v.Rows {
			width = max(width, lipgloss.Width(r.Label)+1)
		}
		for _, r := range v.Rows {
			label := m.styles.RowLabel.Width(width).Render(r.Label + ":")
			lines = append(lines, label+" "+m.styles.RowValue.Render(r.Value))
		}
		if v.Notice != "" {
			lines = append(lines, m.styles.Notice.Render(v.Notice))
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}
