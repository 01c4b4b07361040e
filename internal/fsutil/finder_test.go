package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.hcl", "sub/b.yaml", "sub/c.txt", "d.yml")

	files, err := FindFilesByExtension(dir, ".hcl", ".yaml", ".yml")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "sub", "b.yaml"),
		filepath.Join(dir, "d.yml"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(dir) })
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.hcl", "a.hcl", "notes.txt")

	files, err := FindFiles([]string{
		filepath.Join(dir, "b.hcl"),
		dir,
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "missing"),
	}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "a.hcl"),
	}, files)
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("x.yml", ".yaml", ".yml"))
	assert.False(t, HasExtension("x.hcl", ".yaml", ".yml"))
}
