package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/linkorder/internal/config"
	"github.com/vk/linkorder/internal/ctxlog"
)

// translateTarget converts a decoded target block into its format-agnostic
// form.
func translateTarget(ctx context.Context, b *TargetBlock) (*config.Target, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Translating target block.", "name", b.Name, "kind", b.Kind)

	t := &config.Target{
		Name:          b.Name,
		Kind:          config.TargetKind(b.Kind),
		AliasOf:       b.Alias,
		Imported:      b.Imported,
		Location:      b.Location,
		Languages:     b.Languages,
		EnableExports: b.EnableExports,
		Multiplicity:  b.Multiplicity,
	}
	if b.Alias != "" {
		if b.Kind != "" || len(b.Links) > 0 {
			return nil, fmt.Errorf("%s: alias target %q cannot declare a kind or link blocks", b.DeclRange, b.Name)
		}
		return t, nil
	}
	if b.Kind == "" {
		return nil, fmt.Errorf("%s: target %q is missing the required kind attribute", b.DeclRange, b.Name)
	}

	var diags hcl.Diagnostics
	for _, lb := range b.Links {
		vis, err := config.ParseVisibility(lb.Visibility)
		if err != nil {
			return nil, fmt.Errorf("%s: target %q: %w", b.DeclRange, b.Name, err)
		}
		list, listDiags := newExprList(lb.Libraries)
		diags = append(diags, listDiags...)
		t.Links = append(t.Links, &config.Link{Visibility: vis, Items: optional(list)})
	}

	iface, ifaceDiags := newExprList(b.LinkInterface)
	diags = append(diags, ifaceDiags...)
	if iface != nil {
		if !b.Imported {
			return nil, fmt.Errorf("%s: target %q declares link_interface but is not imported", b.DeclRange, b.Name)
		}
		t.LinkInterface = iface
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("target %q: %w", b.Name, diags)
	}
	return t, nil
}

// translateExternal converts a decoded external block.
func translateExternal(b *ExternalBlock) (*config.External, error) {
	list, diags := newExprList(b.Libraries)
	if diags.HasErrors() {
		return nil, fmt.Errorf("external %q: %w", b.Name, diags)
	}
	return &config.External{Name: b.Name, Libraries: optional(list)}, nil
}

// optional keeps a nil *ExprList from becoming a non-nil interface value.
func optional(l *ExprList) config.ItemList {
	if l == nil {
		return nil
	}
	return l
}
