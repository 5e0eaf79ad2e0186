package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	serr "sxredder/internal/errors"
	"sxredder/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryFor(t *testing.T, path string) Entry {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return Entry{
		Path:    path,
		Name:    filepath.Base(path),
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}
}

func TestPreviewNothingSelected(t *testing.T) {
	p := NewPreviewer(NewLister(), 10, nil)
	pv := p.Generate(Entry{}, false)
	assert.Equal(t, PreviewEmpty, pv.Kind)
	assert.Empty(t, pv.Lines)
}

func TestPreviewDirectory(t *testing.T) {
	dir := t.TempDir()
	testutils.MakeTree(t, dir, map[string]string{
		"docs/":      "",
		"docs/b.txt": "",
		"docs/a/":    "",
		"docs/c.md":  "",
	})

	p := NewPreviewer(NewLister(), 10, nil)
	pv := p.Generate(entryFor(t, filepath.Join(dir, "docs")), true)

	assert.Equal(t, PreviewDirectory, pv.Kind)
	assert.Equal(t, "docs/", pv.Title)
	assert.Equal(t, []string{"a/", "b.txt", "c.md"}, pv.Lines)
}

func TestPreviewEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	testutils.MakeTree(t, dir, map[string]string{"empty/": ""})

	pv := NewPreviewer(NewLister(), 10, nil).Generate(entryFor(t, filepath.Join(dir, "empty")), true)
	assert.Equal(t, PreviewDirectory, pv.Kind)
	assert.Empty(t, pv.Lines)
}

func TestPreviewTextFile(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, "notes.txt", "first\nsecond\r\nthird")

	pv := NewPreviewer(NewLister(), 10, nil).Generate(entryFor(t, path), true)

	assert.Equal(t, PreviewFile, pv.Kind)
	assert.Equal(t, "notes.txt", pv.Title)
	assert.True(t, strings.HasPrefix(pv.MIME, "text/plain"), pv.MIME)
	assert.Equal(t, []string{"first", "second", "third"}, pv.Lines)
}

func TestPreviewLineBudget(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	for i := 1; i <= 250; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	path := testutils.WriteFile(t, dir, "long.txt", b.String())

	pv := NewPreviewer(NewLister(), 100, nil).Generate(entryFor(t, path), true)
	require.Len(t, pv.Lines, 100)
	assert.Equal(t, "line 1", pv.Lines[0])
	assert.Equal(t, "line 100", pv.Lines[99])

	pv = NewPreviewer(NewLister(), 3, nil).Generate(entryFor(t, path), true)
	assert.Equal(t, []string{"line 1", "line 2", "line 3"}, pv.Lines)
}

func TestPreviewMinimumBudget(t *testing.T) {
	p := NewPreviewer(NewLister(), 0, nil)
	assert.Equal(t, 1, p.MaxLines())
}

func TestPreviewStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, "bom.txt", "\xEF\xBB\xBFhello\nworld\n")

	pv := NewPreviewer(NewLister(), 10, nil).Generate(entryFor(t, path), true)
	assert.Equal(t, PreviewFile, pv.Kind)
	assert.Equal(t, []string{"hello", "world"}, pv.Lines)
}

func TestPreviewStopsAtInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, "mixed.txt", "one\ntwo\n\xff bad\nfour\n")

	pv := NewPreviewer(NewLister(), 10, nil).Generate(entryFor(t, path), true)
	assert.Equal(t, PreviewFile, pv.Kind)
	assert.Equal(t, []string{"one", "two"}, pv.Lines)
}

func TestPreviewBinaryFile(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, "blob.bin", "\x00\x01\x02\x03binary\x00data")

	pv := NewPreviewer(NewLister(), 10, nil).Generate(entryFor(t, path), true)
	assert.Equal(t, PreviewUnavailable, pv.Kind)
	assert.Equal(t, []string{UnavailableText}, pv.Lines)
	assert.True(t, serr.IsPreviewUnavailable(pv.Err))
}

func TestPreviewEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, "empty.txt", "")

	pv := NewPreviewer(NewLister(), 10, nil).Generate(entryFor(t, path), true)
	assert.Equal(t, PreviewFile, pv.Kind)
	assert.Empty(t, pv.Lines)
}

func TestPreviewVanishedFile(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, "gone.txt", "data")
	entry := entryFor(t, path)
	require.NoError(t, os.Remove(path))

	pv := NewPreviewer(NewLister(), 10, nil).Generate(entry, true)
	assert.Equal(t, PreviewUnavailable, pv.Kind)
	assert.Equal(t, "gone.txt", pv.Title)
	assert.True(t, serr.IsPreviewUnavailable(pv.Err))
}

func TestPreviewVanishedDirectory(t *testing.T) {
	dir := t.TempDir()
	testutils.MakeTree(t, dir, map[string]string{"sub/": ""})
	entry := entryFor(t, filepath.Join(dir, "sub"))
	require.NoError(t, os.Remove(entry.Path))

	pv := NewPreviewer(NewLister(), 10, nil).Generate(entry, true)
	assert.Equal(t, PreviewUnavailable, pv.Kind)
	assert.Equal(t, []string{UnavailableText}, pv.Lines)
}
