package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles shared by every page.
type Styles struct {
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	TableHead lipgloss.Style
	Selected  lipgloss.Style
	Summary   lipgloss.Style
	Error     lipgloss.Style
	AuthError lipgloss.Style
	Help      lipgloss.Style
	Modal     lipgloss.Style
	Label     lipgloss.Style
	Dropdown  lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Faint(true).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),
		TableHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Summary:   lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		AuthError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Help:      lipgloss.NewStyle().Faint(true),
		Modal:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		Label:     lipgloss.NewStyle().Bold(true),
		Dropdown:  lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).PaddingLeft(1).Faint(true),
		Highlight: lipgloss.NewStyle().Reverse(true),
	}
}
