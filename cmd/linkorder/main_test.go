package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/linkorder/internal/cli"
)

func TestRun_ResolvesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.hcl"), []byte(`
		target "app" {
		  kind = "executable"
		  link { libraries = ["core", "m"] }
		}
		target "core" {
		  kind = "static_library"
		  link { libraries = ["m"] }
		}
	`), 0o600))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(out, errOut, []string{"-p", dir, "app"})

	require.NoError(t, err)
	assert.Equal(t, "app:\n  core\n  m\n", out.String())
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.hcl"), []byte(`target "app" {`), 0o600))

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-p", dir, "app"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_UsageError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--format", "xml", "app"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
