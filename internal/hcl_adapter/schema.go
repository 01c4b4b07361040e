package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level content from any file.
type fileRoot struct {
	Configurations []string         `hcl:"configurations,optional"`
	Targets        []*TargetBlock   `hcl:"target,block"`
	Externals      []*ExternalBlock `hcl:"external,block"`
	Remain         hcl.Body         `hcl:",remain"`
}

// TargetBlock is the raw decoded form of a `target` block.
type TargetBlock struct {
	Name          string         `hcl:"name,label"`
	Kind          string         `hcl:"kind,optional"`
	Alias         string         `hcl:"alias,optional"`
	Imported      bool           `hcl:"imported,optional"`
	Location      string         `hcl:"location,optional"`
	Languages     []string       `hcl:"languages,optional"`
	EnableExports bool           `hcl:"enable_exports,optional"`
	Multiplicity  int            `hcl:"link_multiplicity,optional"`
	Links         []*LinkBlock   `hcl:"link,block"`
	LinkInterface hcl.Expression `hcl:"link_interface,optional"`
	DeclRange     hcl.Range      `hcl:",def_range"`
}

// LinkBlock is the raw decoded form of a `link` block.
type LinkBlock struct {
	Visibility string         `hcl:"visibility,optional"`
	Libraries  hcl.Expression `hcl:"libraries"`
}

// ExternalBlock is the raw decoded form of an `external` block.
type ExternalBlock struct {
	Name      string         `hcl:"name,label"`
	Libraries hcl.Expression `hcl:"libraries"`
}
