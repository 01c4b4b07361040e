package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lotestutil "github.com/vk/linkorder/internal/testutil"
)

const projectHCL = `
configurations = ["Debug", "Release"]

target "app" {
  kind      = "executable"
  languages = ["C"]
  link {
    visibility = "private"
    libraries  = ["A", "B", "-Wl,--as-needed"]
  }
}

target "A" {
  kind      = "static_library"
  languages = ["CXX"]
  link { libraries = ["B"] }
}

target "B" {
  kind = "static_library"
  link { libraries = config == "Debug" ? ["A", "m_d"] : ["A", "m"] }
}
`

const sharedYAML = `
targets:
  - name: tool
    kind: executable
    link:
      - visibility: private
        libraries: [S1]
  - name: S1
    kind: shared_library
    link:
      - visibility: private
        libraries: [S2]
  - name: S2
    kind: shared_library
`

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *lotestutil.SafeBuffer) {
	t.Helper()
	dir := lotestutil.WriteFiles(t, map[string]string{
		"project.hcl": projectHCL,
		"shared.yaml": sharedYAML,
	})
	cfg.ProjectPaths = []string{dir}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &lotestutil.SafeBuffer{}
	a, err := NewApp(context.Background(), out, logs, validated)
	require.NoError(t, err)
	t.Cleanup(func() {
		if lotestutil.LogsEnabled() {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out, logs
}

func TestRun_Text(t *testing.T) {
	a, out, logs := newTestApp(t, Config{Refs: []string{"app@Debug", "tool@Release"}})

	require.NoError(t, a.Run(context.Background()))

	want := `app@Debug (linker language CXX):
  A
  B
  -Wl,--as-needed [flag]
  A
  B
  m_d
  # cycle: A B

tool@Release:
  S1
  S2 [shared-dep]
`
	assert.Equal(t, want, out.String())
	assert.Contains(t, logs.String(), "Link lines resolved.")
}

func TestRun_JSONAllConfigurations(t *testing.T) {
	a, out, _ := newTestApp(t, Config{Refs: []string{"app"}, OutputFormat: FormatJSON, Linker: "rescan"})

	require.NoError(t, a.Run(context.Background()))

	var got []resultJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Debug", got[0].Config)
	assert.Equal(t, "Release", got[1].Config)

	var items []string
	for _, e := range got[1].Entries {
		items = append(items, e.Item)
	}
	assert.Equal(t, []string{"A", "B", "-Wl,--as-needed", "m"}, items)
	assert.Equal(t, "A", got[1].Entries[0].Target)
	assert.True(t, got[1].Entries[2].Flag)
}

func TestRun_AllTargetsWithConfigFilter(t *testing.T) {
	a, out, _ := newTestApp(t, Config{All: true, Configs: []string{"Release"}})

	require.NoError(t, a.Run(context.Background()))

	for _, header := range []string{"app@Release", "A@Release", "B@Release", "tool@Release:", "S1@Release:", "S2@Release:"} {
		assert.Contains(t, out.String(), header)
	}
	assert.NotContains(t, out.String(), "@Debug")
}

func TestRun_MetricsFile(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "linkorder.prom")
	a, _, _ := newTestApp(t, Config{Refs: []string{"app@Debug", "app@Debug"}, MetricsFile: metricsFile})

	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "linkorder_resolutions_total")

	count, err := testutil.GatherAndCount(a.Gatherer(), "linkorder_resolutions_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
}

func TestRun_UnknownTarget(t *testing.T) {
	a, _, _ := newTestApp(t, Config{Refs: []string{"nope@Debug"}})
	assert.ErrorContains(t, a.Run(context.Background()), "unknown target")
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("no targets", func(t *testing.T) {
		cfg, err := NewConfig(Config{ProjectPaths: []string{t.TempDir()}, All: true})
		require.NoError(t, err)
		_, err = NewApp(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, cfg)
		assert.ErrorContains(t, err, "no targets found")
	})

	t.Run("invalid model", func(t *testing.T) {
		dir := lotestutil.WriteFiles(t, map[string]string{"p.hcl": `target "a" { kind = "gadget" }`})
		cfg, err := NewConfig(Config{ProjectPaths: []string{dir}, All: true})
		require.NoError(t, err)
		_, err = NewApp(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, cfg)
		assert.ErrorContains(t, err, "invalid kind")
	})

	t.Run("parse failure", func(t *testing.T) {
		dir := lotestutil.WriteFiles(t, map[string]string{"p.hcl": `target "a" {`})
		cfg, err := NewConfig(Config{ProjectPaths: []string{dir}, All: true})
		require.NoError(t, err)
		_, err = NewApp(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, cfg)
		assert.ErrorContains(t, err, "failed to parse")
	})
}
