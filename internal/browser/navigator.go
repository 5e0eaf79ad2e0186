package browser

import (
	"path/filepath"

	serr "sxredder/internal/errors"
)

// NoSelection is the cursor value of an empty snapshot
const NoSelection = -1

// Navigator owns the current snapshot and cursor. Every transition that
// touches the filesystem builds the new snapshot first and only then swaps
// it in, so a failed read leaves the previous state untouched.
type Navigator struct {
	lister *Lister
	dir    string
	snap   Snapshot
	cursor int
}

// NewNavigator lists dir and places the cursor on its first entry
func NewNavigator(lister *Lister, dir string) (*Navigator, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, serr.NewFileError("cannot resolve directory", dir, serr.DirectoryRead, err)
	}
	n := &Navigator{lister: lister, cursor: NoSelection}
	if err := n.load(abs); err != nil {
		return nil, err
	}
	return n, nil
}

// Dir returns the current directory
func (n *Navigator) Dir() string { return n.dir }

// Snapshot returns the current snapshot
func (n *Navigator) Snapshot() Snapshot { return n.snap }

// Cursor returns the selected index, or NoSelection
func (n *Navigator) Cursor() int { return n.cursor }

// Selected returns the entry under the cursor
func (n *Navigator) Selected() (Entry, bool) {
	if n.cursor == NoSelection {
		return Entry{}, false
	}
	return n.snap.At(n.cursor), true
}

// MoveDown advances the cursor, wrapping from the last entry to the first
func (n *Navigator) MoveDown() {
	if n.snap.Len() == 0 {
		return
	}
	n.cursor = (n.cursor + 1) % n.snap.Len()
}

// MoveUp retreats the cursor, wrapping from the first entry to the last
func (n *Navigator) MoveUp() {
	if n.snap.Len() == 0 {
		return
	}
	n.cursor = (n.cursor - 1 + n.snap.Len()) % n.snap.Len()
}

// Enter descends into entry, which must be a directory
func (n *Navigator) Enter(entry Entry) error {
	if !entry.IsDir {
		return serr.NewFileError("not a directory", entry.Path, serr.InvalidOperation, nil)
	}
	return n.load(entry.Path)
}

// ExitToParent lists the parent of the current directory. At the filesystem
// root it does nothing.
func (n *Navigator) ExitToParent() error {
	parent := filepath.Dir(n.dir)
	if parent == n.dir {
		return nil
	}
	return n.load(parent)
}

// Refresh re-reads the current directory. The cursor stays on the same path
// when it still exists and is clamped into range otherwise.
func (n *Navigator) Refresh() error {
	prev, hadSelection := n.Selected()
	snap, err := n.lister.List(n.dir)
	if err != nil {
		return err
	}

	cursor := NoSelection
	if snap.Len() > 0 {
		cursor = 0
		if hadSelection {
			if i := snap.IndexOf(prev.Path); i >= 0 {
				cursor = i
			} else {
				cursor = min(n.cursor, snap.Len()-1)
			}
		}
	}
	n.snap = snap
	n.cursor = cursor
	return nil
}

func (n *Navigator) load(dir string) error {
	snap, err := n.lister.List(dir)
	if err != nil {
		return err
	}
	n.dir = dir
	n.snap = snap
	n.cursor = NoSelection
	if snap.Len() > 0 {
		n.cursor = 0
	}
	return nil
}
