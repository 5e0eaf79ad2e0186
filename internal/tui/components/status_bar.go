package components

import (
	"fmt"

	"sxredder/internal/browser"
	"sxredder/internal/tui/styles"
)

// StatusBar renders the last status message, or the confirmation prompt
// while an erase is pending
type StatusBar struct {
	width int
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

func (s *StatusBar) View(vm browser.ViewModel) string {
	if vm.Mode == browser.ConfirmPending {
		prompt := fmt.Sprintf("Shred %s? It will be overwritten and removed. [y/n]", vm.Target)
		return styles.Theme.Confirm.Width(s.width).Render(Fit(prompt, s.width))
	}

	text := Fit(vm.Status.Text, s.width)
	switch vm.Status.Level {
	case browser.StatusInfo:
		return styles.Theme.StatusInfo.Render(text)
	case browser.StatusWarn:
		return styles.Theme.StatusWarn.Render(text)
	case browser.StatusError:
		return styles.Theme.StatusError.Render(text)
	}
	return ""
}
