package browser

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	serr "sxredder/internal/errors"
	"sxredder/internal/log"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// PreviewKind tells the display what a Preview holds
type PreviewKind int

const (
	PreviewEmpty PreviewKind = iota
	PreviewDirectory
	PreviewFile
	PreviewUnavailable
)

// UnavailableText is the placeholder line of an unavailable preview
const UnavailableText = "preview unavailable"

// maxLineBytes bounds a single preview line; longer lines end the preview.
const maxLineBytes = 64 * 1024

// Preview is the content of the preview pane for one selection
type Preview struct {
	Kind  PreviewKind
	Title string
	MIME  string
	Lines []string
	// Meta holds image metadata for previews that have no text
	Meta []MetaField
	// Err is the reason an Unavailable preview could not be produced. It is
	// kept for logging only.
	Err error
}

// Previewer produces previews. It never returns an error; failures become an
// Unavailable preview.
type Previewer struct {
	lister   *Lister
	maxLines int
	logger   *log.Logger
}

// NewPreviewer creates a Previewer that reads at most maxLines lines of a file
func NewPreviewer(lister *Lister, maxLines int, logger *log.Logger) *Previewer {
	if logger == nil {
		logger = log.Discard()
	}
	if maxLines < 1 {
		maxLines = 1
	}
	return &Previewer{lister: lister, maxLines: maxLines, logger: logger}
}

// MaxLines returns the file line budget
func (p *Previewer) MaxLines() int { return p.maxLines }

// Generate builds the preview for the selected entry. ok is false when
// nothing is selected.
func (p *Previewer) Generate(entry Entry, ok bool) Preview {
	if !ok {
		return Preview{Kind: PreviewEmpty}
	}
	if entry.IsDir {
		return p.directory(entry)
	}
	return p.file(entry)
}

func (p *Previewer) directory(entry Entry) Preview {
	snap, err := p.lister.List(entry.Path)
	if err != nil {
		return p.unavailable(entry, err)
	}
	lines := make([]string, 0, snap.Len())
	for _, child := range snap.entries {
		name := child.Name
		if child.IsDir {
			name += "/"
		}
		lines = append(lines, name)
	}
	return Preview{Kind: PreviewDirectory, Title: entry.Name + "/", Lines: lines}
}

func (p *Previewer) file(entry Entry) Preview {
	// Opening a FIFO or a device can block until another process shows up.
	// Only regular files, or links that resolve to one, are read.
	if !entry.Mode.IsRegular() && entry.Mode&os.ModeSymlink == 0 {
		return p.unavailable(entry, serr.ErrNotAFile)
	}
	info, err := os.Stat(entry.Path)
	if err != nil {
		return p.unavailable(entry, err)
	}
	if !info.Mode().IsRegular() {
		return p.unavailable(entry, serr.ErrNotAFile)
	}

	f, err := os.Open(entry.Path)
	if err != nil {
		return p.unavailable(entry, err)
	}
	defer f.Close()

	mime := ""
	if m, err := mimetype.DetectReader(f); err == nil {
		mime = m.String()
		if entry.Size > 0 && !isText(m) {
			pv := p.unavailable(entry, serr.Newf("binary content (%s)", mime))
			pv.MIME = mime
			if strings.HasPrefix(mime, "image/") {
				pv.Meta = p.imageMetadata(entry.Path)
			}
			return pv
		}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return p.unavailable(entry, err)
	}

	// Strip a UTF-8 BOM and transcode BOM-marked UTF-16; anything else is
	// passed through and validated line by line.
	decoded := transform.NewReader(f, unicode.BOMOverride(encoding.Nop.NewDecoder()))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	lines := make([]string, 0, min(p.maxLines, 64))
	for len(lines) < p.maxLines && scanner.Scan() {
		line := scanner.Bytes()
		if !utf8.Valid(line) || bytes.IndexByte(line, 0) >= 0 {
			break
		}
		lines = append(lines, string(line))
	}

	if len(lines) == 0 && entry.Size > 0 {
		reason := scanner.Err()
		if reason == nil {
			reason = serr.New("content is not text")
		}
		pv := p.unavailable(entry, reason)
		pv.MIME = mime
		return pv
	}

	return Preview{Kind: PreviewFile, Title: entry.Name, MIME: mime, Lines: lines}
}

// isText reports whether m is text/plain or one of its descendants
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func (p *Previewer) unavailable(entry Entry, err error) Preview {
	wrapped := serr.NewFileError(UnavailableText, entry.Path, serr.PreviewUnavailable, err)
	p.logger.WithError(wrapped).Debug("preview unavailable")
	return Preview{
		Kind:  PreviewUnavailable,
		Title: entry.Name,
		Lines: []string{UnavailableText},
		Err:   wrapped,
	}
}
