package views

import (
	"strings"

	"sxredder/internal/browser"
	"sxredder/internal/tui/components"
	"sxredder/internal/tui/styles"
)

// RenderMainView draws one frame: the current directory, both panes, the
// status line and the key help
func RenderMainView(vm browser.ViewModel, fb *components.FileBrowser, help string, width int) string {
	var sb strings.Builder

	sb.WriteString(RenderHeader(vm.Dir, width))
	sb.WriteString("\n")
	sb.WriteString(fb.View(vm))
	sb.WriteString("\n")
	sb.WriteString(styles.Theme.Help.Render(help))

	return styles.Theme.App.Render(sb.String())
}

// RenderHeader shows the directory being browsed
func RenderHeader(dir string, width int) string {
	title := styles.Theme.Title.Render("sxredder")
	if width <= 0 {
		return title + " " + styles.Theme.Muted.Render(components.Sanitize(dir))
	}
	return title + " " + styles.Theme.Muted.Render(components.Fit(dir, width-len("sxredder ")-2))
}
