package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/linkorder/internal/linkdeps"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPaths []string // .hcl, .yaml and .yml files or directories
	Refs         []string // TARGET or TARGET@CONFIG
	All          bool     // resolve every target of the project
	Configs      []string // configurations for refs that name none

	LogFormat    string
	LogLevel     string
	OutputFormat string
	Linker       string
	Workers      int
	CacheSize    int
	DebugGraph   bool
	MetricsFile  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ProjectPaths) == 0 {
		return nil, errors.New("at least one project path is required")
	}
	if len(cfg.Refs) == 0 && !cfg.All {
		return nil, errors.New("no targets given: pass TARGET[@CONFIG] arguments or --all")
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = FormatText
	}
	if !slices.Contains([]string{FormatText, FormatJSON}, cfg.OutputFormat) {
		return nil, fmt.Errorf("invalid format %q: must be 'text' or 'json'", cfg.OutputFormat)
	}
	if _, err := linkdeps.ParseRepeatPolicy(cfg.Linker); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.CacheSize < 1 {
		cfg.CacheSize = 1024
	}
	return &cfg, nil
}
