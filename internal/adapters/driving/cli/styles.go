package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wim-web/bookin/internal/core/domain"
)

// Theme defines the colour palette for command output.
type Theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
		Border:  lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Header  lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Label: lipgloss.NewStyle().
			Width(10),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

var styles = NewStyles(nil)

// status renders a run status in its colour.
func (s *Styles) status(status domain.RunStatus) string {
	switch status {
	case domain.RunSucceeded:
		return s.Success.Render(string(status))
	case domain.RunFailed:
		return s.Error.Render(string(status))
	default:
		return s.Warning.Render(string(status))
	}
}

// outcome renders a per-file outcome in its colour.
func (s *Styles) outcome(outcome domain.FileOutcome) string {
	switch outcome {
	case domain.OutcomeCreated:
		return s.Success.Render(string(outcome))
	case domain.OutcomePlanned:
		return s.Warning.Render(string(outcome))
	default:
		return s.Muted.Render(string(outcome))
	}
}
