package tui

import (
	"sxredder/internal/browser"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds keys to session commands
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Erase    key.Binding
	Confirm  key.Binding
	Deny     key.Binding
	Refresh  key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter/l", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h", "backspace"),
			key.WithHelp("h/←", "parent"),
		),
		Erase: key.NewBinding(
			key.WithKeys("d", "x", "delete"),
			key.WithHelp("d", "shred"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll preview"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll preview"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Erase, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Erase, k.Confirm, k.Deny},
		{k.PageUp, k.PageDown, k.Refresh, k.Quit, k.Help},
	}
}

// confirmKeys is the help shown while a confirmation is pending
type confirmKeys struct{ KeyMap }

func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Deny}
}

func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Command maps a key press to a session command, or CmdNone when the key
// isn't bound to one.
func (k KeyMap) Command(msg tea.KeyMsg) browser.Command {
	switch {
	case key.Matches(msg, k.Up):
		return browser.CmdMoveUp
	case key.Matches(msg, k.Down):
		return browser.CmdMoveDown
	case key.Matches(msg, k.Enter):
		return browser.CmdEnterOrActivate
	case key.Matches(msg, k.Back):
		return browser.CmdExitToParent
	case key.Matches(msg, k.Erase):
		return browser.CmdRequestErase
	case key.Matches(msg, k.Confirm):
		return browser.CmdConfirm
	case key.Matches(msg, k.Deny):
		return browser.CmdDeny
	case key.Matches(msg, k.Refresh):
		return browser.CmdRefresh
	case key.Matches(msg, k.Quit):
		return browser.CmdQuit
	}
	return browser.CmdNone
}

// PreviewKeyMap restricts the preview viewport to page scrolling so the
// list keys never scroll it
func (k KeyMap) PreviewKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageUp:   k.PageUp,
		PageDown: k.PageDown,
	}
}
