package browser

import (
	"fmt"
	"time"

	serr "sxredder/internal/errors"
	"sxredder/internal/log"
	"sxredder/internal/shred"

	"github.com/dustin/go-humanize"
)

// Mode is what the display should show around the panes
type Mode int

const (
	Browsing Mode = iota
	ConfirmPending
)

// StatusLevel classifies a status message
type StatusLevel int

const (
	StatusNone StatusLevel = iota
	StatusInfo
	StatusWarn
	StatusError
)

// Status is the one-line message under the panes
type Status struct {
	Level StatusLevel
	Text  string
}

// Eraser is the shredder as seen by the session
type Eraser interface {
	Erase(path string) (shred.Report, error)
}

// ViewEntry is one row of the directory pane
type ViewEntry struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// ViewModel is the read-only state handed to the display every frame
type ViewModel struct {
	Dir      string
	Entries  []ViewEntry
	Selected int
	Preview  Preview
	Mode     Mode
	Target   string
	Status   Status
}

// Session drives one browsing session: it routes each command through the
// gate, applies navigation or erasure, and keeps the preview in step with
// the selection.
type Session struct {
	nav     *Navigator
	preview *Previewer
	gate    *Gate
	eraser  Eraser
	logger  *log.Logger

	status     Status
	current    Preview
	previewKey string
}

// NewSession starts a session in the navigator's directory
func NewSession(nav *Navigator, previewer *Previewer, eraser Eraser, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Discard()
	}
	s := &Session{
		nav:     nav,
		preview: previewer,
		gate:    NewGate(),
		eraser:  eraser,
		logger:  logger,
	}
	s.recomputePreview()
	return s
}

// Navigator exposes the navigation state
func (s *Session) Navigator() *Navigator { return s.nav }

// Gate exposes the confirmation gate
func (s *Session) Gate() *Gate { return s.gate }

// Mode reports whether a confirmation is outstanding
func (s *Session) Mode() Mode {
	if s.gate.State() == PendingDelete {
		return ConfirmPending
	}
	return Browsing
}

// Apply handles one command and reports whether the session should end.
func (s *Session) Apply(cmd Command) (quit bool) {
	selected, ok := s.nav.Selected()

	switch s.gate.Decide(cmd, selected, ok) {
	case Swallow:
		s.logger.With(log.F("command", cmd.String())).Debug("command swallowed")
		return false
	case Reject:
		if ok {
			s.setStatus(StatusWarn, fmt.Sprintf("%s is a directory; only files can be shredded", selected.Name))
		}
		return false
	case Arm:
		if s.gate.Arm(selected) {
			s.status = Status{}
			s.logger.With(log.F("path", selected.Path), log.F("request", s.gate.RequestID())).Info("erase requested")
		}
		return false
	case Cancel:
		target, id, _ := s.gate.Resolve()
		s.logger.With(log.F("path", target.Path), log.F("request", id)).Info("erase cancelled")
		s.setStatus(StatusInfo, "kept "+target.Name)
		return false
	case Execute:
		target, id, _ := s.gate.Resolve()
		s.erase(target, id)
		// The erase outcome stays in the status line even if the re-list fails.
		if err := s.nav.Refresh(); err != nil {
			s.logger.WithError(err).Warn("refresh after erase failed")
		}
		s.recomputePreview()
		return false
	}

	switch cmd {
	case CmdQuit:
		return true
	case CmdMoveDown:
		s.nav.MoveDown()
	case CmdMoveUp:
		s.nav.MoveUp()
	case CmdEnterOrActivate:
		if ok && selected.IsDir {
			if err := s.nav.Enter(selected); err != nil {
				s.reportNavError(err)
			} else {
				s.status = Status{}
			}
		}
	case CmdExitToParent:
		if err := s.nav.ExitToParent(); err != nil {
			s.reportNavError(err)
		} else {
			s.status = Status{}
		}
	case CmdRefresh:
		s.refresh()
	}

	s.recomputePreview()
	return false
}

// Refresh re-reads the current directory, e.g. after a change notification.
// It is ignored while a confirmation is pending.
func (s *Session) Refresh() {
	if s.gate.State() == PendingDelete {
		return
	}
	s.refresh()
}

// View builds the view model for the current frame
func (s *Session) View() ViewModel {
	snap := s.nav.Snapshot()
	entries := make([]ViewEntry, 0, snap.Len())
	for _, e := range snap.entries {
		entries = append(entries, ViewEntry{Name: e.Name, IsDir: e.IsDir, Size: e.Size, ModTime: e.ModTime})
	}

	vm := ViewModel{
		Dir:      s.nav.Dir(),
		Entries:  entries,
		Selected: s.nav.Cursor(),
		Preview:  s.current,
		Mode:     s.Mode(),
		Status:   s.status,
	}
	if target, ok := s.gate.Pending(); ok {
		vm.Target = target.Name
	}
	return vm
}

func (s *Session) erase(target Entry, requestID string) {
	logger := s.logger.With(log.F("path", target.Path), log.F("request", requestID))

	report, err := s.eraser.Erase(target.Path)
	switch {
	case err == nil:
		logger.With(log.F("size", report.Size)).Info("erase complete")
		s.setStatus(StatusInfo, fmt.Sprintf("shredded %s (%s overwritten twice)", target.Name, humanize.IBytes(uint64(report.Size))))
	case serr.IsUnlinkFailed(err):
		logger.WithError(err).Warn("content destroyed but name not removed")
		s.setStatus(StatusWarn, fmt.Sprintf("contents of %s destroyed, but the file could not be removed: %v", target.Name, serr.Unwrap(err)))
	default:
		logger.WithError(err).Error("erase failed")
		s.setStatus(StatusError, fmt.Sprintf("shred of %s failed, file may be partially overwritten: %v", target.Name, err))
	}
}

func (s *Session) refresh() {
	if err := s.nav.Refresh(); err != nil {
		s.reportNavError(err)
	}
	s.recomputePreview()
}

func (s *Session) reportNavError(err error) {
	s.logger.WithError(err).Warn("navigation failed")
	s.setStatus(StatusError, err.Error())
}

func (s *Session) setStatus(level StatusLevel, text string) {
	s.status = Status{Level: level, Text: text}
}

// recomputePreview regenerates the preview when the selection changed.
// The key includes the size and mtime so a refresh that finds the same path
// with new content still regenerates.
func (s *Session) recomputePreview() {
	selected, ok := s.nav.Selected()
	key := s.nav.Dir() + "\x00"
	if ok {
		key += fmt.Sprintf("%s\x00%d\x00%d", selected.Path, selected.Size, selected.ModTime.UnixNano())
	}
	if key == s.previewKey {
		return
	}
	s.previewKey = key
	s.current = s.preview.Generate(selected, ok)
}
