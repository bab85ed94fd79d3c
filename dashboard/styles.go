package dashboard

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the dashboard views.
type Styles struct {
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Section lipgloss.Style
	Error   lipgloss.Style
	Spinner lipgloss.Style
	Help    lipgloss.Style
	Chart   lipgloss.Style
}

// DefaultStyles returns the default dashboard styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}

	s := Styles{}
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Section = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(1, 0, 0, 0)
	s.Error = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	s.Spinner = lipgloss.NewStyle().Foreground(highlight)
	s.Help = lipgloss.NewStyle().Foreground(subtle).Padding(1, 0, 0, 0)
	s.Chart = lipgloss.NewStyle().Padding(1, 2)
	return s
}
