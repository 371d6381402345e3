package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#60A5FA")
	colorMuted   = lipgloss.Color("#64748B")
	colorError   = lipgloss.Color("#EF4444")
	colorMiss    = lipgloss.Color("#F87171")
	colorSuccess = lipgloss.Color("#4ADE80")
	colorValue   = lipgloss.Color("#DBEAFE")
)

type styles struct {
	Frame      lipgloss.Style
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Header     lipgloss.Style
	Label      lipgloss.Style
	Selected   lipgloss.Style
	Button     lipgloss.Style
	Disabled   lipgloss.Style
	Error      lipgloss.Style
	NotFound   lipgloss.Style
	Success    lipgloss.Style
	RowLabel   lipgloss.Style
	RowValue   lipgloss.Style
	Notice     lipgloss.Style
	Validation lipgloss.Style
	Help       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Frame:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary).Padding(1, 3).Width(80),
		Title:      lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Subtitle:   lipgloss.NewStyle().Foreground(colorMuted),
		Header:     lipgloss.NewStyle().Foreground(colorMuted),
		Label:      lipgloss.NewStyle().Foreground(colorPrimary),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(colorValue).Underline(true),
		Button:     lipgloss.NewStyle().Bold(true).Foreground(colorValue).Background(lipgloss.Color("#2563EB")).Padding(0, 2),
		Disabled:   lipgloss.NewStyle().Foreground(colorMuted).Background(lipgloss.Color("#1E293B")).Padding(0, 2),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(colorError),
		NotFound:   lipgloss.NewStyle().Bold(true).Italic(true).Foreground(colorMiss),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		RowLabel:   lipgloss.NewStyle().Foreground(colorPrimary),
		RowValue:   lipgloss.NewStyle().Foreground(colorValue),
		Notice:     lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		Validation: lipgloss.NewStyle().Foreground(colorError),
		Help:       lipgloss.NewStyle().Foreground(colorMuted),
	}
}
