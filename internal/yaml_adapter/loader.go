// Package yaml_adapter loads build descriptions written in YAML.
//
//	configurations: [Debug, Release]
//	targets:
//	  - name: app
//	    kind: executable
//	    link:
//	      - visibility: private
//	        libraries: [core, m]
//	        per_config:
//	          Debug: [core_d, m]
//	externals:
//	  - name: ssl
//	    libraries: [crypto]
//
// A per_config entry replaces the default list for that configuration.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/vk/linkorder/internal/config"
	"github.com/vk/linkorder/internal/ctxlog"
	"github.com/vk/linkorder/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions this loader reads.
var Extensions = []string{".yaml", ".yml"}

type fileRoot struct {
	Configurations []string      `yaml:"configurations"`
	Targets        []targetDoc   `yaml:"targets"`
	Externals      []externalDoc `yaml:"externals"`
}

type listDoc struct {
	Libraries []string            `yaml:"libraries"`
	PerConfig map[string][]string `yaml:"per_config"`
}

type linkDoc struct {
	Visibility string `yaml:"visibility"`
	listDoc    `yaml:",inline"`
}

type targetDoc struct {
	Name          string    `yaml:"name"`
	Kind          string    `yaml:"kind"`
	Alias         string    `yaml:"alias"`
	Imported      bool      `yaml:"imported"`
	Location      string    `yaml:"location"`
	Languages     []string  `yaml:"languages"`
	EnableExports bool      `yaml:"enable_exports"`
	Multiplicity  int       `yaml:"link_multiplicity"`
	Link          []linkDoc `yaml:"link"`
	LinkInterface *listDoc  `yaml:"link_interface"`
}

type externalDoc struct {
	Name    string `yaml:"name"`
	listDoc `yaml:",inline"`
}

func (d listDoc) toList() *config.StaticList {
	return &config.StaticList{Default: d.Libraries, PerConfig: d.PerConfig}
}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML build-description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes every YAML file found under paths into one model. Unknown
// keys are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		var root fileRoot
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}
		if err := merge(model, &root); err != nil {
			return nil, fmt.Errorf("in file %s: %w", file, err)
		}
	}

	logger.Debug("YAML loading complete.", "configurations", len(model.Configurations), "targets", len(model.Targets), "externals", len(model.Externals))
	return model, nil
}

func merge(model *config.Model, root *fileRoot) error {
	for _, c := range root.Configurations {
		if !slices.Contains(model.Configurations, c) {
			model.Configurations = append(model.Configurations, c)
		}
	}
	for _, td := range root.Targets {
		t, err := translateTarget(td)
		if err != nil {
			return err
		}
		model.Targets = append(model.Targets, t)
	}
	for _, ed := range root.Externals {
		model.Externals = append(model.Externals, &config.External{Name: ed.Name, Libraries: ed.toList()})
	}
	return nil
}

func translateTarget(td targetDoc) (*config.Target, error) {
	t := &config.Target{
		Name:          td.Name,
		Kind:          config.TargetKind(td.Kind),
		AliasOf:       td.Alias,
		Imported:      td.Imported,
		Location:      td.Location,
		Languages:     td.Languages,
		EnableExports: td.EnableExports,
		Multiplicity:  td.Multiplicity,
	}
	if td.Alias != "" {
		if td.Kind != "" || len(td.Link) > 0 {
			return nil, fmt.Errorf("alias target %q cannot declare a kind or link entries", td.Name)
		}
		return t, nil
	}
	if td.Kind == "" {
		return nil, fmt.Errorf("target %q is missing the required kind", td.Name)
	}
	for _, ld := range td.Link {
		vis, err := config.ParseVisibility(ld.Visibility)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", td.Name, err)
		}
		t.Links = append(t.Links, &config.Link{Visibility: vis, Items: ld.toList()})
	}
	if td.LinkInterface != nil {
		if !td.Imported {
			return nil, fmt.Errorf("target %q declares link_interface but is not imported", td.Name)
		}
		t.LinkInterface = td.LinkInterface.toList()
	}
	return t, nil
}
