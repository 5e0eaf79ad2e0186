package components

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

// Sanitize makes s safe to print inside a pane: tabs become spaces and other
// control characters become a visible placeholder, so file content can't move
// the cursor or change terminal state.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	col := 0
	for _, r := range s {
		switch {
		case r == '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case unicode.IsControl(r) || r == unicode.ReplacementChar:
			b.WriteRune('·')
			col++
		default:
			b.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
	}
	return b.String()
}

// Fit sanitizes s and cuts it to at most width terminal cells
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), width, "…")
}
