// Package config holds the default settings shared by the CLI and the
// build engine.
package config

import (
	"github.com/leapstack-labs/morphdict/pkg/source"
	"github.com/leapstack-labs/morphdict/pkg/unknown"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "morphdict.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "morphdict.yml"

// EnvPrefix prefixes environment variables that override config keys.
const EnvPrefix = "MORPHDICT_"

// Default configuration values.
const (
	DefaultSourceDir       = "dict"
	DefaultOutputDir       = "build"
	DefaultStateFile       = ".morphdict/catalog.db"
	DefaultDialect         = "ipadic"
	DefaultEncoding        = source.DefaultEncoding
	DefaultUnknownEncoding = unknown.DefaultEncoding
	DefaultOutput          = "auto" // TTY=text, otherwise markdown
)

// Defaults returns the default value of every config key.
func Defaults() map[string]any {
	return map[string]any{
		"source_dir":        DefaultSourceDir,
		"output_dir":        DefaultOutputDir,
		"state_path":        DefaultStateFile,
		"dialect":           DefaultDialect,
		"encoding":          DefaultEncoding,
		"unknown_encoding":  DefaultUnknownEncoding,
		"normalize":         false,
		"keep_unnormalized": false,
		"exclude":           "",
		"verbose":           false,
		"output":            DefaultOutput,
	}
}
