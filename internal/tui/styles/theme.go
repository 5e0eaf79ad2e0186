package styles

import (
	"sxredder/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds every style the display uses
type Styles struct {
	App         lipgloss.Style
	Title       lipgloss.Style
	Pane        lipgloss.Style
	PaneTitle   lipgloss.Style
	Directory   lipgloss.Style
	File        lipgloss.Style
	Cursor      lipgloss.Style
	Muted       lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
	Confirm     lipgloss.Style
	Help        lipgloss.Style
}

// New builds the styles for a palette
func New(p config.Palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Primary)),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		PaneTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Primary)),
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Directory)).
			Bold(true),
		File: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.File)),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)),
		StatusWarn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Warning)),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)).
			Bold(true),
		Confirm: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)).
			Bold(true).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color(p.Error)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
	}
}

// Theme is the active style set
var Theme = New(config.GetTheme("default"))

// Apply switches the active style set to the named theme
func Apply(name string) {
	Theme = New(config.GetTheme(name))
}
