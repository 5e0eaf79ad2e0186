package browser

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	serr "sxredder/internal/errors"
	"sxredder/pkg/testutils"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(s Snapshot) []string {
	out := make([]string, 0, s.Len())
	for _, e := range s.entries {
		out = append(out, e.Name)
	}
	return out
}

func TestListDirectoriesFirst(t *testing.T) {
	dir := t.TempDir()
	testutils.MakeTree(t, dir, map[string]string{
		"z.txt": "z",
		"sub/":  "",
	})

	snap, err := NewLister().List(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"sub", "z.txt"}, names(snap))
	assert.True(t, snap.At(0).IsDir)
	assert.False(t, snap.At(1).IsDir)
	assert.Equal(t, dir, snap.Dir())
}

func TestListSingleFile(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFile(t, dir, "a.txt", "hello")

	snap, err := NewLister().List(dir)
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())

	e := snap.At(0)
	assert.Equal(t, "a.txt", e.Name)
	assert.Equal(t, filepath.Join(dir, "a.txt"), e.Path)
	assert.Equal(t, int64(5), e.Size)
	assert.False(t, e.ModTime.IsZero())
}

func TestListOrdering(t *testing.T) {
	dir := t.TempDir()
	testutils.MakeTree(t, dir, map[string]string{
		"b.txt":   "",
		"A.txt":   "",
		"c/":      "",
		"a/":      "",
		"B/":      "",
		"10.log":  "",
		"2.log":   "",
		".hidden": "",
	})

	snap, err := NewLister().List(dir)
	require.NoError(t, err)

	entries := snap.Entries()
	assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	}))

	// every directory precedes every file
	seenFile := false
	for _, e := range entries {
		if !e.IsDir {
			seenFile = true
			continue
		}
		assert.False(t, seenFile, "directory %s listed after a file", e.Name)
	}

	assert.Equal(t, []string{"B", "a", "c", ".hidden", "10.log", "2.log", "A.txt", "b.txt"}, names(snap))
}

func TestListEmptyDirectory(t *testing.T) {
	snap, err := NewLister().List(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
	assert.Empty(t, snap.Entries())
}

func TestListMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := NewLister().List(missing)
	require.Error(t, err)
	assert.True(t, serr.IsDirectoryRead(err))

	var fe *serr.FileError
	require.True(t, serr.As(err, &fe))
	assert.Equal(t, missing, fe.Path())
	assert.True(t, os.IsNotExist(serr.Unwrap(err)))
}

func TestListIgnore(t *testing.T) {
	dir := t.TempDir()
	testutils.MakeTree(t, dir, map[string]string{
		"keep.txt":  "",
		"skip.tmp":  "",
		".git/":     "",
		"notes.md":  "",
		"cache.tmp": "",
	})

	lister := NewLister(WithIgnore(glob.MustCompile("*.tmp"), glob.MustCompile(".git")))
	snap, err := lister.List(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.txt", "notes.md"}, names(snap))
}

func TestSnapshotEntriesIsCopy(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFile(t, dir, "a.txt", "")

	snap, err := NewLister().List(dir)
	require.NoError(t, err)

	entries := snap.Entries()
	entries[0].Name = "changed"
	assert.Equal(t, "a.txt", snap.At(0).Name)
}

func TestSnapshotIndexOf(t *testing.T) {
	dir := t.TempDir()
	testutils.MakeTree(t, dir, map[string]string{"a.txt": "", "b.txt": ""})

	snap, err := NewLister().List(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.IndexOf(filepath.Join(dir, "b.txt")))
	assert.Equal(t, -1, snap.IndexOf(filepath.Join(dir, "c.txt")))
}
