// Package config handles configuration loading for briefcase.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion. A missing file is not an error; defaults apply (sqlite
// backend, warn-level logging).
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from BRIEFCASE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/briefcase/briefcase.yaml
//  3. ~/.config/briefcase/briefcase.yaml
//
// # Sections
//
// Storage settings:
//
//	storage:
//	  backend: sqlite   # or "files"
//	  path: /custom/location   # optional, overrides the resolver
//
// Logging settings:
//
//	logging:
//	  level: warn   # debug, info, warn, error
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	storage:
//	  path: "${BRIEFCASE_STORE}"
package config
