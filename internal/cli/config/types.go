// Package config provides configuration management for the morphdict CLI.
package config

import (
	intconfig "github.com/leapstack-labs/morphdict/internal/config"
)

// Config holds all CLI configuration options.
type Config struct {
	SourceDir        string `koanf:"source_dir"`
	OutputDir        string `koanf:"output_dir"`
	StatePath        string `koanf:"state_path"`
	Dialect          string `koanf:"dialect"`
	Encoding         string `koanf:"encoding"`
	UnknownEncoding  string `koanf:"unknown_encoding"`
	Normalize        bool   `koanf:"normalize"`
	KeepUnnormalized bool   `koanf:"keep_unnormalized"`
	Exclude          string `koanf:"exclude"`
	Verbose          bool   `koanf:"verbose"`
	OutputFormat     string `koanf:"output"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultSourceDir = intconfig.DefaultSourceDir
	DefaultOutputDir = intconfig.DefaultOutputDir
	DefaultStateFile = intconfig.DefaultStateFile
	DefaultDialect   = intconfig.DefaultDialect
	DefaultOutput    = intconfig.DefaultOutput
)
