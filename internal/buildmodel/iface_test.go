package buildmodel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/linkorder/internal/config"
)

func mustTarget(t *testing.T, p *Project, name string) *Target {
	t.Helper()
	tgt, err := p.Target(name)
	require.NoError(t, err)
	require.NotNil(t, tgt)
	return tgt
}

func TestLinkInterface_ByKind(t *testing.T) {
	m := &config.Model{Targets: []*config.Target{
		target("s1", config.KindSharedLibrary),
		target("s2", config.KindSharedLibrary),
		{
			Name: "static", Kind: config.KindStaticLibrary, Languages: []string{"CXX"},
			Links: []*config.Link{
				link(config.Public, "pub"),
				link(config.Private, "priv"),
				link(config.Interface, "iface_only"),
			},
		},
		target("shared", config.KindSharedLibrary,
			link(config.Public, "pub"),
			link(config.Private, "s1", "m", "s2", "s1"),
			link(config.Interface, "iface_only"),
		),
		target("header_only", config.KindInterfaceLibrary,
			link(config.Interface, "z"),
			link(config.Private, "ignored"),
		),
		{
			Name: "prebuilt", Kind: config.KindSharedLibrary, Imported: true,
			LinkInterface: config.Static("dl"),
			Links:         []*config.Link{link(config.Public, "never")},
		},
	}}
	p := newProject(t, m)

	t.Run("static exports everything", func(t *testing.T) {
		iface, err := p.LinkInterface(mustTarget(t, p, "static"), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"pub", "priv", "iface_only"}, iface.Libraries)
		assert.Equal(t, []string{"CXX"}, iface.Languages)
		assert.Empty(t, iface.SharedDeps)
	})

	t.Run("shared hides private items but records shared runtime deps", func(t *testing.T) {
		iface, err := p.LinkInterface(mustTarget(t, p, "shared"), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"pub", "iface_only"}, iface.Libraries)
		assert.Equal(t, []string{"s1", "s2"}, iface.SharedDeps)
		assert.Empty(t, iface.Languages)

		impl, err := p.LinkImplementation(mustTarget(t, p, "shared"), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"pub", "s1", "m", "s2", "s1"}, impl)
	})

	t.Run("interface library exports interface items", func(t *testing.T) {
		iface, err := p.LinkInterface(mustTarget(t, p, "header_only"), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"z"}, iface.Libraries)
	})

	t.Run("imported target exports its declared interface", func(t *testing.T) {
		tgt := mustTarget(t, p, "prebuilt")
		iface, err := p.LinkInterface(tgt, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"dl"}, iface.Libraries)

		impl, err := p.LinkImplementation(tgt, "")
		require.NoError(t, err)
		assert.Empty(t, impl)
	})
}

func TestLinkInterface_SelfReference(t *testing.T) {
	m := &config.Model{Targets: []*config.Target{
		target("loop", config.KindStaticLibrary, link(config.Public, "loop")),
		target("via_alias", config.KindInterfaceLibrary, link(config.Interface, "va")),
		{Name: "va", AliasOf: "via_alias"},
	}}
	p := newProject(t, m)

	_, err := p.LinkInterface(mustTarget(t, p, "loop"), "")
	assert.True(t, errors.Is(err, ErrSelfReference))

	_, err = p.LinkInterface(mustTarget(t, p, "via_alias"), "")
	assert.True(t, errors.Is(err, ErrSelfReference))
}

func TestLinkInterface_EvaluationError(t *testing.T) {
	m := &config.Model{Targets: []*config.Target{
		{Name: "a", Kind: config.KindStaticLibrary, Links: []*config.Link{{Visibility: config.Public, Items: failingList{}}}},
	}}
	p := newProject(t, m)

	_, err := p.LinkInterface(mustTarget(t, p, "a"), "Debug")
	require.Error(t, err)
	assert.ErrorContains(t, err, `target "a"`)
	assert.ErrorContains(t, err, `configuration "Debug"`)
}

// countingList counts how often it is evaluated.
type countingList struct {
	calls int
	items []string
}

func (c *countingList) Items(string) ([]string, error) {
	c.calls++
	return c.items, nil
}

func TestLinkInterface_Memoized(t *testing.T) {
	list := &countingList{items: []string{"x"}}
	m := &config.Model{Targets: []*config.Target{
		{Name: "a", Kind: config.KindStaticLibrary, Links: []*config.Link{{Visibility: config.Public, Items: list}}},
	}}
	cache, err := NewLRUCache(16)
	require.NoError(t, err)
	p := newProject(t, m, WithInterfaceCache(cache))
	a := mustTarget(t, p, "a")

	first, err := p.LinkInterface(a, "Debug")
	require.NoError(t, err)
	second, err := p.LinkInterface(a, "Debug")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, list.calls)
	assert.Equal(t, 1, cache.Len())

	_, err = p.LinkInterface(a, "Release")
	require.NoError(t, err)
	assert.Equal(t, 2, list.calls)

	p.Purge()
	assert.Equal(t, 0, cache.Len())
	_, err = p.LinkInterface(a, "Debug")
	require.NoError(t, err)
	assert.Equal(t, 3, list.calls)
}

func TestNewLRUCache_InvalidSize(t *testing.T) {
	_, err := NewLRUCache(0)
	assert.Error(t, err)
}
