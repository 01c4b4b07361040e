package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/linkorder/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type flags struct {
	projects    []string
	configs     []string
	all         bool
	logFormat   string
	logLevel    string
	format      string
	linker      string
	workers     int
	cacheSize   int
	debugGraph  bool
	metricsFile string
}

func newCommand(output io.Writer, f *flags, parsed **app.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkorder [flags] TARGET[@CONFIG]...",
		Short: "Compute linker command-line ordering for build targets",
		Long: `linkorder - Link dependency resolution for build descriptions.

Reads HCL (.hcl) and YAML (.yaml, .yml) build descriptions and prints, for
each requested target and configuration, the ordered list of libraries and
flags to pass to the linker. A TARGET without @CONFIG is resolved for every
configuration the project declares, or for those given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !f.all {
				return cmd.Help()
			}
			logFormat := strings.ToLower(f.logFormat)
			if logFormat != "text" && logFormat != "json" {
				return errors.New("invalid log-format: must be 'text' or 'json'")
			}
			logLevel := strings.ToLower(f.logLevel)
			switch logLevel {
			case "debug", "info", "warn", "error":
			default:
				return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
			}

			cfg, err := app.NewConfig(app.Config{
				ProjectPaths: f.projects,
				Refs:         args,
				All:          f.all,
				Configs:      f.configs,
				LogFormat:    logFormat,
				LogLevel:     logLevel,
				OutputFormat: strings.ToLower(f.format),
				Linker:       strings.ToLower(f.linker),
				Workers:      f.workers,
				CacheSize:    f.cacheSize,
				DebugGraph:   f.debugGraph,
				MetricsFile:  f.metricsFile,
			})
			if err != nil {
				return err
			}
			*parsed = cfg
			return nil
		},
	}
	cmd.SetOut(output)
	cmd.SetErr(output)

	fl := cmd.Flags()
	fl.StringSliceVarP(&f.projects, "project", "p", []string{"."}, "Build description file or directory (repeatable).")
	fl.StringSliceVar(&f.configs, "config", nil, "Configurations to resolve targets given without @CONFIG (repeatable).")
	fl.BoolVar(&f.all, "all", false, "Resolve every target of the project.")
	fl.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fl.StringVar(&f.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fl.StringVar(&f.format, "format", app.FormatText, "Result format. Options: 'text' or 'json'.")
	fl.StringVar(&f.linker, "linker", "gnu", "Linker convention for library cycles. Options: 'gnu' (repeat) or 'rescan' (list once).")
	fl.IntVar(&f.workers, "workers", 4, "Number of concurrent resolutions.")
	fl.IntVar(&f.cacheSize, "cache-size", 1024, "Number of link interfaces and results kept in memory.")
	fl.BoolVar(&f.debugGraph, "debug-graph", false, "Include the constraint graph of each resolution in the output.")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file.")
	return cmd
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	var parsed *app.Config
	cmd := newCommand(output, &flags{}, &parsed)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if parsed == nil {
		// Help or version output was requested.
		return nil, true, nil
	}
	return parsed, false, nil
}
