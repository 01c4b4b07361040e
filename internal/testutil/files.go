package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes every file into a fresh temporary directory and returns
// it. Names are relative paths, so "sub/a.hcl" creates the subdirectory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

// LogsEnabled reports whether tests should print captured logs.
func LogsEnabled() bool {
	return os.Getenv("LINKORDER_TEST_LOGS") == "true"
}
