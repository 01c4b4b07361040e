package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vk/linkorder/internal/linkdeps"
)

type entryJSON struct {
	Item      string `json:"item"`
	Target    string `json:"target,omitempty"`
	Location  string `json:"location,omitempty"`
	SharedDep bool   `json:"shared_dep,omitempty"`
	Flag      bool   `json:"flag,omitempty"`
}

type resultJSON struct {
	Target         string      `json:"target"`
	Config         string      `json:"config"`
	LinkerLanguage string      `json:"linker_language,omitempty"`
	Entries        []entryJSON `json:"entries"`
	Cycles         [][]string  `json:"cycles,omitempty"`
	Graph          string      `json:"graph,omitempty"`
}

func render(w io.Writer, format string, results []*linkdeps.Result) error {
	if format == FormatJSON {
		return renderJSON(w, results)
	}
	return renderText(w, results)
}

func renderJSON(w io.Writer, results []*linkdeps.Result) error {
	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		rj := resultJSON{
			Target:         res.Target,
			Config:         res.Config,
			LinkerLanguage: res.LinkerLanguage,
			Entries:        make([]entryJSON, 0, len(res.Entries)),
			Cycles:         res.Cycles,
			Graph:          res.Graph,
		}
		for _, e := range res.Entries {
			ej := entryJSON{Item: e.Item, SharedDep: e.IsSharedDep, Flag: e.IsFlag}
			if e.Target != nil {
				ej.Target = e.Target.Name
				ej.Location = e.Target.Location
			}
			rj.Entries = append(rj.Entries, ej)
		}
		out = append(out, rj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderText(w io.Writer, results []*linkdeps.Result) error {
	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s", res.Target)
		if res.Config != "" {
			fmt.Fprintf(&sb, "@%s", res.Config)
		}
		if res.LinkerLanguage != "" {
			fmt.Fprintf(&sb, " (linker language %s)", res.LinkerLanguage)
		}
		sb.WriteString(":\n")
		for _, e := range res.Entries {
			sb.WriteString("  ")
			sb.WriteString(e.Item)
			switch {
			case e.IsSharedDep:
				sb.WriteString(" [shared-dep]")
			case e.IsFlag:
				sb.WriteString(" [flag]")
			}
			sb.WriteByte('\n')
		}
		for _, cycle := range res.Cycles {
			fmt.Fprintf(&sb, "  # cycle: %s\n", strings.Join(cycle, " "))
		}
		if res.Graph != "" {
			for _, line := range strings.Split(strings.TrimRight(res.Graph, "\n"), "\n") {
				fmt.Fprintf(&sb, "  # graph: %s\n", line)
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
