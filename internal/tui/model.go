// Package tui is the terminal front end: it maps key presses to session
// commands and renders the session's view model with bubbletea.
package tui

import (
	"sxredder/internal/browser"
	"sxredder/internal/log"
	"sxredder/internal/tui/components"
	"sxredder/internal/tui/messages"
	"sxredder/internal/tui/views"
	"sxredder/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model adapts a browser.Session to bubbletea. All state changes happen in
// Update; the watcher goroutine only delivers messages.
type Model struct {
	session *browser.Session
	keys    KeyMap
	help    help.Model
	browser *components.FileBrowser
	watcher *watch.Watcher
	logger  *log.Logger

	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithWatcher refreshes the listing when the watched directory changes
func WithWatcher(w *watch.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithShowSizes toggles the size column of the directory pane
func WithShowSizes(show bool) Option {
	return func(m *Model) { m.browser.SetShowSizes(show) }
}

// WithLogger injects the logger
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// New creates the model for session
func New(session *browser.Session, opts ...Option) *Model {
	keys := DefaultKeyMap()
	m := &Model{
		session: session,
		keys:    keys,
		help:    help.New(),
		browser: components.NewFileBrowser(keys.PreviewKeyMap()),
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resize(defaultWidth, defaultHeight)
	m.sync()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	m.follow()
	return m.waitForChange()
}

// View implements tea.Model
func (m *Model) View() string {
	vm := m.session.View()

	var keys help.KeyMap = m.keys
	if vm.Mode == browser.ConfirmPending {
		keys = confirmKeys{m.keys}
	}
	return views.RenderMainView(vm, m.browser, m.help.View(keys), m.width)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case messages.DirChangedMsg:
		if msg.Change.Dir == m.session.Navigator().Dir() {
			m.session.Refresh()
			m.sync()
		}
		return m, m.waitForChange()

	case messages.WatchClosedMsg:
		m.watcher = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	pending := m.session.Mode() == browser.ConfirmPending

	if !pending && key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		return m, nil
	}

	cmd := m.keys.Command(msg)
	if cmd == browser.CmdNone {
		if pending {
			return m, nil
		}
		return m, m.browser.Update(msg)
	}

	if m.session.Apply(cmd) {
		return m, tea.Quit
	}
	m.sync()
	m.follow()
	return m, nil
}

func (m *Model) sync() {
	m.browser.Sync(m.session.View())
}

// follow points the watcher at the current directory
func (m *Model) follow() {
	if m.watcher == nil {
		return
	}
	dir := m.session.Navigator().Dir()
	if err := m.watcher.Watch(dir); err != nil {
		m.logger.WithError(err).Warn("cannot watch directory")
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return messages.WatchClosedMsg{}
		}
		return messages.DirChangedMsg{Change: change}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	helpHeight := 1
	if m.help.ShowAll {
		for _, column := range m.keys.FullHelp() {
			helpHeight = max(helpHeight, len(column))
		}
	}
	// header and help
	m.browser.SetSize(width-2, height-1-helpHeight)
}

// Session exposes the session being displayed
func (m *Model) Session() *browser.Session { return m.session }

// Width returns the terminal width last reported
func (m *Model) Width() int { return m.width }

// Height returns the terminal height last reported
func (m *Model) Height() int { return m.height }

// ShowFullHelp reports whether the full key help is expanded
func (m *Model) ShowFullHelp() bool { return m.help.ShowAll }
