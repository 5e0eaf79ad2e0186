//go:build unix

package browser

import (
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionNamedPipeDoesNotBlock(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "a-pipe"), 0o600))
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "b-pipe"), 0o600))

	lister := NewLister()
	nav, err := NewNavigator(lister, dir)
	require.NoError(t, err)

	done := make(chan *Session, 1)
	go func() {
		s := NewSession(nav, NewPreviewer(lister, 100, nil), &fakeEraser{}, nil)
		s.Apply(CmdMoveDown)
		done <- s
	}()

	var s *Session
	select {
	case s = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session blocked previewing a named pipe")
	}

	vm := s.View()
	assert.Equal(t, 1, vm.Selected)
	assert.Equal(t, PreviewUnavailable, vm.Preview.Kind)
	assert.Equal(t, "b-pipe", vm.Preview.Title)
}
