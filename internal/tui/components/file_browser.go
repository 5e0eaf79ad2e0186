package components

import (
	"sxredder/internal/browser"
	"sxredder/internal/tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// paneChrome is the width and height taken by a pane's border and padding
const (
	paneChromeX = 4
	paneChromeY = 2
)

// FileBrowser lays out the directory pane and the preview pane side by side
// with the status bar below them
type FileBrowser struct {
	fileList  *FileList
	preview   *PreviewPane
	statusBar *StatusBar
	width     int
	height    int
	listWidth int
}

func NewFileBrowser(previewKeys viewport.KeyMap) *FileBrowser {
	return &FileBrowser{
		fileList:  NewFileList(),
		preview:   NewPreviewPane(previewKeys),
		statusBar: NewStatusBar(),
	}
}

// SetSize sets the space available for both panes and the status bar
func (fb *FileBrowser) SetSize(width, height int) {
	fb.width = width
	fb.height = height

	fb.listWidth = max(width*2/5, 20)
	previewWidth := max(width-fb.listWidth, 20)
	paneHeight := max(height-2, 3)

	fb.fileList.SetSize(fb.listWidth-paneChromeX, paneHeight-paneChromeY)
	fb.preview.SetSize(previewWidth-paneChromeX, paneHeight-paneChromeY)
	fb.statusBar.SetWidth(width)
}

func (fb *FileBrowser) SetShowSizes(show bool) {
	fb.fileList.SetShowSizes(show)
}

// Sync copies the view model into the panes
func (fb *FileBrowser) Sync(vm browser.ViewModel) {
	fb.fileList.SetEntries(vm.Entries, vm.Selected)
	fb.preview.SetPreview(vm.Preview)
}

// Update forwards scroll keys to the preview pane
func (fb *FileBrowser) Update(msg tea.Msg) tea.Cmd {
	return fb.preview.Update(msg)
}

func (fb *FileBrowser) FileList() *FileList       { return fb.fileList }
func (fb *FileBrowser) PreviewPane() *PreviewPane { return fb.preview }

func (fb *FileBrowser) View(vm browser.ViewModel) string {
	paneHeight := max(fb.height-2, 3) - paneChromeY
	pane := styles.Theme.Pane.Height(paneHeight)

	list := pane.Width(fb.listWidth - 2).Render(fb.fileList.View())
	preview := pane.Width(max(fb.width-fb.listWidth, 20) - 2).Render(fb.preview.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, list, preview),
		fb.statusBar.View(vm),
	)
}
