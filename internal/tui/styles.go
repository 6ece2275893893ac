package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the task list screen.
type Styles struct {
	Title      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Summary    lipgloss.Style
	Row        lipgloss.Style
	Selected   lipgloss.Style
	Completed  lipgloss.Style
	FieldError lipgloss.Style
	Banner     lipgloss.Style
	Modal      lipgloss.Style
	Muted      lipgloss.Style
	Spinner    lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	primary := lipgloss.Color("#0d6efd")
	danger := lipgloss.Color("#dc3545")
	muted := lipgloss.Color("#6c757d")

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),
		Tab: lipgloss.NewStyle().
			Foreground(primary).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
		Summary: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Row: lipgloss.NewStyle().
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Completed: lipgloss.NewStyle().
			Foreground(muted).
			Strikethrough(true),
		FieldError: lipgloss.NewStyle().
			Foreground(danger),
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(danger).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 2),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Spinner: lipgloss.NewStyle().
			Foreground(primary),
	}
}
