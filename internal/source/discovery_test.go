package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.XLSX", "notes.txt", "c.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	files, err := ListSupportedFiles(dir)
	require.NoError(t, err)

	names := []string{}
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.XLSX", "b.csv", "c.csv"}, names)
	for _, f := range files {
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
	}
}

func TestListSupportedFiles_AbsentFolder(t *testing.T) {
	_, err := ListSupportedFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestListSupportedFiles_EmptyFolder(t *testing.T) {
	files, err := ListSupportedFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
