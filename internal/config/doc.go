// Package config defines the format-agnostic model of a build description,
// along with the Loader interface for reading it from files.
//
// The `config.Model` is the single source of truth for the `buildmodel`
// package. Concrete loaders, such as for HCL and YAML, are provided in
// separate packages.
package config
