package targetref

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex matches a target or configuration name.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+:-]+$`)

// Ref identifies one resolution request.
type Ref struct {
	Target string
	Config string
	// HasConfig distinguishes `t@` style empty configurations from none.
	HasConfig bool
}

// Parse creates a Ref from its canonical string form.
func Parse(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("target reference cannot be empty")
	}
	name, cfg, hasConfig := strings.Cut(raw, "@")
	if !nameRegex.MatchString(name) {
		return Ref{}, fmt.Errorf("invalid target name %q in reference %q", name, raw)
	}
	if hasConfig && cfg != "" && !nameRegex.MatchString(cfg) {
		return Ref{}, fmt.Errorf("invalid configuration name %q in reference %q", cfg, raw)
	}
	return Ref{Target: name, Config: cfg, HasConfig: hasConfig}, nil
}

// ParseAll parses every raw reference, stopping at the first error.
func ParseAll(raws []string) ([]Ref, error) {
	refs := make([]Ref, 0, len(raws))
	for _, raw := range raws {
		ref, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// New returns a reference to target for a specific configuration.
func New(target, config string) Ref {
	return Ref{Target: target, Config: config, HasConfig: true}
}

// String returns the canonical form of the reference.
func (r Ref) String() string {
	if !r.HasConfig {
		return r.Target
	}
	return r.Target + "@" + r.Config
}

// Expand turns a reference without a configuration into one reference per
// configuration. References that already carry one are returned unchanged.
func (r Ref) Expand(configs []string) []Ref {
	if r.HasConfig {
		return []Ref{r}
	}
	out := make([]Ref, 0, len(configs))
	for _, c := range configs {
		out = append(out, New(r.Target, c))
	}
	return out
}
