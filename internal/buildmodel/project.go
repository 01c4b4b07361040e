package buildmodel

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/linkorder/internal/config"
	"github.com/vk/linkorder/internal/ctxlog"
)

// Target is a validated target of the project.
type Target struct {
	Name          string
	Kind          config.TargetKind
	Imported      bool
	Location      string
	Languages     []string
	EnableExports bool
	Multiplicity  int

	def *config.Target
}

// Linkable reports whether other targets may link against t.
func (t *Target) Linkable() bool {
	switch t.Kind {
	case config.KindStaticLibrary, config.KindSharedLibrary, config.KindInterfaceLibrary:
		return true
	case config.KindExecutable:
		return t.EnableExports
	}
	return false
}

// IsShared reports whether t is loaded at runtime, so the linker re-uses it
// instead of needing it repeated.
func (t *Target) IsShared() bool {
	return t.Kind == config.KindSharedLibrary
}

// Project is the validated, queryable form of a build description.
type Project struct {
	configurations []string
	targets        map[string]*Target
	aliases        map[string]string
	externals      map[string]config.ItemList
	order          []string
	cache          InterfaceCache
}

// Option customizes a Project.
type Option func(*Project)

// WithInterfaceCache makes the project memoize link interfaces in c.
func WithInterfaceCache(c InterfaceCache) Option {
	return func(p *Project) { p.cache = c }
}

// New validates the model and builds a Project from it.
func New(ctx context.Context, m *config.Model, opts ...Option) (*Project, error) {
	logger := ctxlog.FromContext(ctx)
	p := &Project{
		configurations: slices.Clone(m.Configurations),
		targets:        make(map[string]*Target),
		aliases:        make(map[string]string),
		externals:      make(map[string]config.ItemList),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cache == nil {
		p.cache = noCache{}
	}

	for _, def := range m.Targets {
		if def.Name == "" {
			return nil, fmt.Errorf("target with empty name")
		}
		if p.has(def.Name) {
			return nil, fmt.Errorf("duplicate target definition %q", def.Name)
		}
		if def.AliasOf != "" {
			p.aliases[def.Name] = def.AliasOf
			continue
		}
		if !def.Kind.Valid() {
			return nil, fmt.Errorf("target %q has invalid kind %q", def.Name, def.Kind)
		}
		multiplicity := def.Multiplicity
		if multiplicity < 0 {
			return nil, fmt.Errorf("target %q has negative link_multiplicity %d", def.Name, multiplicity)
		}
		p.targets[def.Name] = &Target{
			Name:          def.Name,
			Kind:          def.Kind,
			Imported:      def.Imported,
			Location:      def.Location,
			Languages:     slices.Clone(def.Languages),
			EnableExports: def.EnableExports,
			Multiplicity:  multiplicity,
			def:           def,
		}
		p.order = append(p.order, def.Name)
	}

	for _, ext := range m.Externals {
		if p.has(ext.Name) {
			return nil, fmt.Errorf("external %q collides with a target of the same name", ext.Name)
		}
		p.externals[ext.Name] = ext.Libraries
	}

	logger.Debug("Project model built.", "targets", len(p.targets), "aliases", len(p.aliases), "externals", len(p.externals))
	return p, nil
}

func (p *Project) has(name string) bool {
	_, isTarget := p.targets[name]
	_, isAlias := p.aliases[name]
	_, isExternal := p.externals[name]
	return isTarget || isAlias || isExternal
}

// Configurations returns the declared configurations. A project without any
// is resolved once with the empty default configuration.
func (p *Project) Configurations() []string {
	if len(p.configurations) == 0 {
		return []string{""}
	}
	return slices.Clone(p.configurations)
}

// Targets returns the names of all real (non-alias) targets in declaration order.
func (p *Project) Targets() []string {
	return slices.Clone(p.order)
}

// Target looks up a target by name, following aliases. Unlike ResolveName it
// also returns targets that cannot be linked against.
func (p *Project) Target(name string) (*Target, error) {
	seen := map[string]bool{}
	current := name
	for {
		if t, ok := p.targets[current]; ok {
			return t, nil
		}
		next, ok := p.aliases[current]
		if !ok {
			return nil, nil
		}
		if seen[current] {
			return nil, selfReference(name, current)
		}
		seen[current] = true
		current = next
	}
}

// ResolveName maps an item string to an in-project target. It returns nil
// without error when no linkable target has that name; the item is then an
// external library, path or flag.
func (p *Project) ResolveName(name string) (*Target, error) {
	t, err := p.Target(name)
	if err != nil || t == nil {
		return nil, err
	}
	if !t.Linkable() {
		return nil, nil
	}
	return t, nil
}

// KnownDepends returns the declared dependencies of an external item, and
// whether any were declared at all.
func (p *Project) KnownDepends(item, configName string) ([]string, bool, error) {
	list, ok := p.externals[item]
	if !ok {
		return nil, false, nil
	}
	items, err := list.Items(configName)
	if err != nil {
		return nil, true, fmt.Errorf("evaluating dependencies of external %q for configuration %q: %w", item, configName, err)
	}
	return items, true, nil
}

// Purge drops every memoized link interface. Call it after the build
// description changes.
func (p *Project) Purge() {
	p.cache.Purge()
}
