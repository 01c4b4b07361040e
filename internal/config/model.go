package config

import (
	"fmt"
	"slices"
)

// Model is the unified, format-agnostic representation of a build description.
type Model struct {
	Configurations []string
	Targets        []*Target
	Externals      []*External
}

// TargetKind is the artifact type a target produces.
type TargetKind string

const (
	KindExecutable       TargetKind = "executable"
	KindStaticLibrary    TargetKind = "static_library"
	KindSharedLibrary    TargetKind = "shared_library"
	KindModuleLibrary    TargetKind = "module_library"
	KindInterfaceLibrary TargetKind = "interface_library"
	KindObjectLibrary    TargetKind = "object_library"
)

// Valid reports whether k is one of the known kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case KindExecutable, KindStaticLibrary, KindSharedLibrary,
		KindModuleLibrary, KindInterfaceLibrary, KindObjectLibrary:
		return true
	}
	return false
}

// Visibility scopes a link list the way a build description declares it.
type Visibility string

const (
	// Public items are linked by the target and exported to its consumers.
	Public Visibility = "public"
	// Private items are linked by the target only.
	Private Visibility = "private"
	// Interface items are exported to consumers but not linked by the target.
	Interface Visibility = "interface"
)

// ParseVisibility maps a user-provided string onto a Visibility. The empty
// string means Public, matching a plain link declaration.
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(s); v {
	case "":
		return Public, nil
	case Public, Private, Interface:
		return v, nil
	}
	return "", fmt.Errorf("invalid visibility %q: must be one of public, private, interface", s)
}

// Target is the format-agnostic representation of a `target` block.
type Target struct {
	Name string
	Kind TargetKind
	// AliasOf names the real target when this entry is only an alias.
	AliasOf string
	// Imported targets are prebuilt; their consumers see LinkInterface only.
	Imported bool
	Location string

	Languages     []string
	EnableExports bool
	// Multiplicity asks for a cycle containing this target to be repeated
	// at least this many times on the link line.
	Multiplicity int

	Links         []*Link
	LinkInterface ItemList
}

// Link is one `link` block of a target.
type Link struct {
	Visibility Visibility
	Items      ItemList
}

// External declares the known dependencies of a library that is not built
// by the project.
type External struct {
	Name      string
	Libraries ItemList
}

// StaticList is an ItemList whose entries are known ahead of time, with
// optional per-configuration replacements.
type StaticList struct {
	Default   []string
	PerConfig map[string][]string
}

// Items implements ItemList.
func (l *StaticList) Items(config string) ([]string, error) {
	if l == nil {
		return nil, nil
	}
	if items, ok := l.PerConfig[config]; ok {
		return slices.Clone(items), nil
	}
	return slices.Clone(l.Default), nil
}

// Static is shorthand for a StaticList without overrides.
func Static(items ...string) *StaticList {
	return &StaticList{Default: items}
}

// Merge appends the content of other to m. Configurations are kept unique.
func (m *Model) Merge(other *Model) {
	for _, c := range other.Configurations {
		if !slices.Contains(m.Configurations, c) {
			m.Configurations = append(m.Configurations, c)
		}
	}
	m.Targets = append(m.Targets, other.Targets...)
	m.Externals = append(m.Externals, other.Externals...)
}
