package linkdeps

import (
	"slices"

	"github.com/vk/linkorder/internal/config"
)

// linkerLanguage picks the preferred language among the root's own
// languages and those exported by static libraries on the link line. When
// none of them is preferred, the first one seen wins.
func (r *Resolver) linkerLanguage(res *resolution) string {
	var seen []string
	add := func(langs []string) {
		for _, l := range langs {
			if l != "" && !slices.Contains(seen, l) {
				seen = append(seen, l)
			}
		}
	}
	add(res.root.Languages)
	for i := 0; i < res.reg.Len(); i++ {
		e := res.reg.entry(i)
		if e.Target == nil || e.Target.Kind != config.KindStaticLibrary {
			continue
		}
		if iface, ok := res.iface[i]; ok {
			add(iface.Languages)
		}
	}

	for _, pref := range r.languages {
		if slices.Contains(seen, pref) {
			return pref
		}
	}
	if len(seen) > 0 {
		return seen[0]
	}
	return ""
}
