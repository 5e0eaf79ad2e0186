package components

import (
	"fmt"
	"strings"

	"sxredder/internal/browser"
	"sxredder/internal/tui/styles"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const sizeColumn = 9

// FileList renders the directory pane. It keeps a scroll offset so the
// cursor stays visible in long listings.
type FileList struct {
	entries   []browser.ViewEntry
	cursor    int
	offset    int
	width     int
	height    int
	showSizes bool
}

// NewFileList creates an empty list
func NewFileList() *FileList {
	return &FileList{cursor: browser.NoSelection, showSizes: true}
}

// SetSize sets the inner width and height of the pane
func (fl *FileList) SetSize(width, height int) {
	fl.width = width
	fl.height = max(height, 1)
}

// SetShowSizes toggles the size column
func (fl *FileList) SetShowSizes(show bool) {
	fl.showSizes = show
}

// SetEntries replaces the rows and the cursor
func (fl *FileList) SetEntries(entries []browser.ViewEntry, cursor int) {
	fl.entries = entries
	fl.cursor = cursor
	fl.scrollToCursor()
}

// Offset returns the index of the first visible row
func (fl *FileList) Offset() int { return fl.offset }

func (fl *FileList) scrollToCursor() {
	if fl.cursor < 0 || len(fl.entries) <= fl.height {
		fl.offset = 0
		return
	}
	if fl.cursor < fl.offset {
		fl.offset = fl.cursor
	}
	if fl.cursor >= fl.offset+fl.height {
		fl.offset = fl.cursor - fl.height + 1
	}
	fl.offset = min(fl.offset, len(fl.entries)-fl.height)
}

func (fl *FileList) View() string {
	if len(fl.entries) == 0 {
		return styles.Theme.Muted.Render(Fit("(empty directory)", fl.width))
	}

	end := min(fl.offset+fl.height, len(fl.entries))
	rows := make([]string, 0, end-fl.offset)
	for i := fl.offset; i < end; i++ {
		rows = append(rows, fl.row(i))
	}
	return strings.Join(rows, "\n")
}

func (fl *FileList) row(i int) string {
	e := fl.entries[i]

	prefix := "  "
	if i == fl.cursor {
		prefix = "> "
	}

	name := e.Name
	if e.IsDir {
		name += "/"
	}

	size := ""
	if fl.showSizes && !e.IsDir {
		size = fmt.Sprintf("%*s", sizeColumn, humanize.IBytes(uint64(e.Size)))
	}

	nameWidth := fl.width - runewidth.StringWidth(prefix) - runewidth.StringWidth(size)
	name = Fit(name, nameWidth)
	if size != "" {
		name = runewidth.FillRight(name, nameWidth)
	}

	style := styles.Theme.File
	if e.IsDir {
		style = styles.Theme.Directory
	}
	if i == fl.cursor {
		return styles.Theme.Cursor.Render(prefix+name) + styles.Theme.Muted.Render(size)
	}
	return prefix + style.Render(name) + styles.Theme.Muted.Render(size)
}
