// Package harness runs the whole application against build descriptions
// written into a temporary directory.
package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/linkorder/internal/app"
	"github.com/vk/linkorder/internal/testutil"
)

// Result holds the outcomes of an integration test run.
type Result struct {
	Output    string
	LogOutput string
	Err       error
}

// Entry mirrors one entry of the JSON output.
type Entry struct {
	Item      string `json:"item"`
	Target    string `json:"target"`
	SharedDep bool   `json:"shared_dep"`
	Flag      bool   `json:"flag"`
}

// LinkLine mirrors one result of the JSON output.
type LinkLine struct {
	Target         string     `json:"target"`
	Config         string     `json:"config"`
	LinkerLanguage string     `json:"linker_language"`
	Entries        []Entry    `json:"entries"`
	Cycles         [][]string `json:"cycles"`
}

// Items returns the entry names in link order.
func (l LinkLine) Items() []string {
	items := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		items = append(items, e.Item)
	}
	return items
}

// Run writes files, then loads and resolves them with the given config.
// ProjectPaths and LogLevel are filled in by the harness.
func Run(t *testing.T, files map[string]string, cfg app.Config) *Result {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	cfg.ProjectPaths = []string{dir}
	cfg.LogLevel = "debug"

	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a, err := app.NewApp(context.Background(), out, logs, validated)
	if err == nil {
		err = a.Run(context.Background())
	}

	if testutil.LogsEnabled() {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}
	return &Result{Output: out.String(), LogOutput: logs.String(), Err: err}
}

// RunJSON resolves refs and decodes the JSON output.
func RunJSON(t *testing.T, files map[string]string, cfg app.Config) []LinkLine {
	t.Helper()
	cfg.OutputFormat = app.FormatJSON
	res := Run(t, files, cfg)
	require.NoError(t, res.Err)

	var lines []LinkLine
	require.NoError(t, json.Unmarshal([]byte(res.Output), &lines))
	return lines
}
