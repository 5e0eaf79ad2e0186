// Package browser holds the navigation core of sxredder: directory snapshots,
// the cursor, previews, and the confirmation gate in front of the shredder.
// Nothing here renders or reads keys; the tui package drives it through
// Session.
package browser

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	serr "sxredder/internal/errors"
	"sxredder/internal/log"

	"github.com/gobwas/glob"
)

// Entry is one direct child of a listed directory. Mode is the entry's own
// mode, so a symlink reports os.ModeSymlink rather than its target's type.
type Entry struct {
	Path    string
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
	Mode    os.FileMode
}

// Snapshot is the sorted listing of one directory at one point in time.
// It is never mutated after List returns it.
type Snapshot struct {
	dir     string
	entries []Entry
}

// Dir returns the directory the snapshot was read from
func (s Snapshot) Dir() string { return s.dir }

// Len returns the number of entries
func (s Snapshot) Len() int { return len(s.entries) }

// At returns the entry at index i. It panics when i is out of range, like a
// slice index would.
func (s Snapshot) At(i int) Entry { return s.entries[i] }

// Entries returns a copy of the entries in display order
func (s Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// IndexOf returns the index of the entry with the given path, or -1
func (s Snapshot) IndexOf(path string) int {
	for i, e := range s.entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

// Less orders directories before files, then by full path
func Less(a, b Entry) bool {
	if a.IsDir != b.IsDir {
		return a.IsDir
	}
	return a.Path < b.Path
}

// Lister reads directories into snapshots
type Lister struct {
	ignore []glob.Glob
	logger *log.Logger
}

// ListerOption configures a Lister
type ListerOption func(*Lister)

// WithIgnore hides entries whose name matches any of the globs
func WithIgnore(matchers ...glob.Glob) ListerOption {
	return func(l *Lister) { l.ignore = append(l.ignore, matchers...) }
}

// WithListerLogger injects the logger
func WithListerLogger(logger *log.Logger) ListerOption {
	return func(l *Lister) { l.logger = logger }
}

// NewLister creates a Lister
func NewLister(opts ...ListerOption) *Lister {
	l := &Lister{logger: log.Discard()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// List reads the direct children of dir. Children whose metadata can't be
// read are skipped. If the read stops part-way the entries gathered so far
// are returned; only a directory that yields nothing at all is an error.
func (l *Lister) List(dir string) (Snapshot, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if len(dirEntries) == 0 {
			return Snapshot{}, serr.NewFileError("cannot read directory", dir, serr.DirectoryRead, err)
		}
		l.logger.With(log.F("dir", dir)).WithError(err).Warn("partial directory listing")
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if l.ignored(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			l.logger.With(log.F("dir", dir), log.F("name", de.Name())).WithError(err).Debug("skipping entry")
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(dir, de.Name()),
			Name:    de.Name(),
			IsDir:   de.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Mode:    info.Mode(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})

	return Snapshot{dir: dir, entries: entries}, nil
}

func (l *Lister) ignored(name string) bool {
	for _, g := range l.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}
