// Package hcl_adapter loads build descriptions written in HCL.
//
// Targets are `target` blocks, known dependencies of prebuilt libraries are
// `external` blocks, and the set of configurations is the top-level
// `configurations` attribute:
//
//	configurations = ["Debug", "Release"]
//
//	target "app" {
//	  kind = "executable"
//	  link {
//	    visibility = "private"
//	    libraries  = config == "Debug" ? ["core_d", "m"] : ["core", "m"]
//	  }
//	}
//
//	external "ssl" {
//	  libraries = ["crypto"]
//	}
//
// Link lists are expressions. They are checked when the file is loaded and
// evaluated once per configuration with the variable `config` set to the
// configuration name.
package hcl_adapter
