package buildmodel

import (
	"fmt"
	"slices"

	"github.com/vk/linkorder/internal/config"
)

// Interface is what a target exposes to the targets that link against it.
type Interface struct {
	// Libraries are linked by every consumer, in declaration order.
	Libraries []string
	// Languages are the languages whose runtimes a consumer must link.
	Languages []string
	// SharedDeps are shared libraries the target loads at runtime without
	// exporting them.
	SharedDeps []string
	// Multiplicity is the minimum repeat count requested for cycles that
	// contain the target.
	Multiplicity int
}

// LinkImplementation returns the items t links to build itself.
func (p *Project) LinkImplementation(t *Target, configName string) ([]string, error) {
	if t.Imported {
		return nil, nil
	}
	return p.collect(t, configName, config.Public, config.Private)
}

// LinkInterface returns the memoized link interface of t for configName.
func (p *Project) LinkInterface(t *Target, configName string) (*Interface, error) {
	key := InterfaceKey{Target: t.Name, Config: configName}
	if iface, ok := p.cache.Get(key); ok {
		return iface, nil
	}
	iface, err := p.computeInterface(t, configName)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, iface)
	return iface, nil
}

func (p *Project) computeInterface(t *Target, configName string) (*Interface, error) {
	iface := &Interface{Multiplicity: t.Multiplicity}

	if t.Imported {
		items, err := evaluate(t.def.LinkInterface, t.Name, configName)
		if err != nil {
			return nil, err
		}
		if err := p.checkSelf(t, items); err != nil {
			return nil, err
		}
		iface.Libraries = items
		if t.Kind == config.KindStaticLibrary {
			iface.Languages = slices.Clone(t.Languages)
		}
		return iface, nil
	}

	var err error
	switch t.Kind {
	case config.KindStaticLibrary:
		iface.Libraries, err = p.collect(t, configName, config.Public, config.Interface, config.Private)
		iface.Languages = slices.Clone(t.Languages)
	case config.KindSharedLibrary, config.KindExecutable:
		iface.Libraries, err = p.collect(t, configName, config.Public, config.Interface)
		if err == nil {
			iface.SharedDeps, err = p.sharedDeps(t, configName, iface.Libraries)
		}
	case config.KindInterfaceLibrary:
		iface.Libraries, err = p.collect(t, configName, config.Public, config.Interface)
	}
	if err != nil {
		return nil, err
	}
	return iface, nil
}

// sharedDeps lists the implementation items of t that are shared library
// targets and that its interface does not already export.
func (p *Project) sharedDeps(t *Target, configName string, exported []string) ([]string, error) {
	impl, err := p.LinkImplementation(t, configName)
	if err != nil {
		return nil, err
	}
	var deps []string
	for _, item := range impl {
		if slices.Contains(exported, item) || slices.Contains(deps, item) {
			continue
		}
		dep, err := p.ResolveName(item)
		if err != nil {
			return nil, err
		}
		if dep != nil && dep.IsShared() {
			deps = append(deps, item)
		}
	}
	return deps, nil
}

// collect concatenates the items of every link block of t whose visibility
// is one of vis, in declaration order.
func (p *Project) collect(t *Target, configName string, vis ...config.Visibility) ([]string, error) {
	var items []string
	for _, link := range t.def.Links {
		if !slices.Contains(vis, link.Visibility) {
			continue
		}
		list, err := evaluate(link.Items, t.Name, configName)
		if err != nil {
			return nil, err
		}
		items = append(items, list...)
	}
	if err := p.checkSelf(t, items); err != nil {
		return nil, err
	}
	return items, nil
}

// checkSelf rejects a target that lists itself, directly or through an alias.
func (p *Project) checkSelf(t *Target, items []string) error {
	for _, item := range items {
		if item == t.Name {
			return selfReference(t.Name, item)
		}
		if _, isAlias := p.aliases[item]; !isAlias {
			continue
		}
		resolved, err := p.Target(item)
		if err != nil {
			return err
		}
		if resolved == t {
			return selfReference(t.Name, item)
		}
	}
	return nil
}

func evaluate(list config.ItemList, target, configName string) ([]string, error) {
	if list == nil {
		return nil, nil
	}
	items, err := list.Items(configName)
	if err != nil {
		return nil, fmt.Errorf("evaluating link items of target %q for configuration %q: %w", target, configName, err)
	}
	return items, nil
}
