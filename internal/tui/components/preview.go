package components

import (
	"strings"

	"sxredder/internal/browser"
	"sxredder/internal/tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// PreviewPane shows the preview of the selected entry in a scrollable
// viewport
type PreviewPane struct {
	viewport viewport.Model
	preview  browser.Preview
	content  string
	width    int
	height   int
}

// NewPreviewPane creates a pane whose viewport scrolls with keys
func NewPreviewPane(keys viewport.KeyMap) *PreviewPane {
	vp := viewport.New(0, 0)
	vp.KeyMap = keys
	return &PreviewPane{viewport: vp}
}

// SetSize sets the inner width and height; one row goes to the title
func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = max(height, 2)
	p.viewport.Width = width
	p.viewport.Height = p.height - 1
	p.render()
}

// SetPreview shows pv, resetting the scroll position when it changed
func (p *PreviewPane) SetPreview(pv browser.Preview) {
	p.preview = pv
	p.render()
}

// Update forwards scroll keys to the viewport
func (p *PreviewPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// ScrollOffset returns the first visible preview line
func (p *PreviewPane) ScrollOffset() int { return p.viewport.YOffset }

func (p *PreviewPane) render() {
	content := p.body()
	if content == p.content {
		return
	}
	p.content = content
	p.viewport.SetContent(content)
	p.viewport.GotoTop()
}

func (p *PreviewPane) body() string {
	pv := p.preview
	switch pv.Kind {
	case browser.PreviewEmpty:
		return styles.Theme.Muted.Render(Fit("nothing selected", p.width))
	case browser.PreviewUnavailable:
		lines := []string{styles.Theme.Muted.Render(Fit(browser.UnavailableText, p.width))}
		if len(pv.Meta) > 0 {
			lines = append(lines, "")
			for _, m := range pv.Meta {
				lines = append(lines, Fit(m.Label+": "+m.Value, p.width))
			}
		}
		return strings.Join(lines, "\n")
	}

	if len(pv.Lines) == 0 {
		label := "(empty file)"
		if pv.Kind == browser.PreviewDirectory {
			label = "(empty directory)"
		}
		return styles.Theme.Muted.Render(Fit(label, p.width))
	}

	lines := make([]string, len(pv.Lines))
	for i, line := range pv.Lines {
		lines[i] = Fit(line, p.width)
	}
	return strings.Join(lines, "\n")
}

func (p *PreviewPane) title() string {
	pv := p.preview
	if pv.Kind == browser.PreviewEmpty {
		return styles.Theme.PaneTitle.Render("preview")
	}
	title := Fit(pv.Title, p.width)
	if pv.MIME != "" && runewidth.StringWidth(title)+len(pv.MIME)+1 < p.width {
		return styles.Theme.PaneTitle.Render(title) + " " + styles.Theme.Muted.Render(pv.MIME)
	}
	return styles.Theme.PaneTitle.Render(title)
}

func (p *PreviewPane) View() string {
	return p.title() + "\n" + p.viewport.View()
}
