package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Report styles
	Header  lipgloss.Style
	Count   lipgloss.Style
	Percent lipgloss.Style
	Key     lipgloss.Style
	Notice  lipgloss.Style

	// Status styles
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	// TUI styles
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}{
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Count:   lipgloss.NewStyle().Bold(true),
	Percent: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),

	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red

	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
	StatusBar: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")).Padding(0, 1),
	Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// PercentStyle colors a share of traffic by severity
func PercentStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 1:
		return Styles.Danger
	case pct >= 0.1:
		return Styles.Warning
	default:
		return Styles.Success
	}
}

// painter applies styles only when enabled
type painter bool

func (p painter) paint(s lipgloss.Style, text string) string {
	if !p {
		return text
	}
	return s.Render(text)
}
