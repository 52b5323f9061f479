package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/leapstack-labs/morphdict/internal/engine"
	"github.com/leapstack-labs/morphdict/pkg/core"
	"github.com/leapstack-labs/morphdict/pkg/dialect"
	"github.com/leapstack-labs/morphdict/pkg/source"
)

// Output formats accepted by --output.
var outputFormats = []string{"auto", "text", "markdown", "json"}

// OutputFormats lists the accepted --output values.
func OutputFormats() []string {
	return append([]string(nil), outputFormats...)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if _, err := dialect.Parse(c.Dialect); err != nil {
		return fmt.Errorf("dialect: %w", err)
	}
	if _, err := source.Lookup(c.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if _, err := source.Lookup(c.UnknownEncoding); err != nil {
		return fmt.Errorf("unknown_encoding: %w", err)
	}
	if _, err := c.excludePattern(); err != nil {
		return err
	}
	if !validOutput(c.OutputFormat) {
		return fmt.Errorf("output %q: expected one of %v", c.OutputFormat, outputFormats)
	}
	return nil
}

// ValidateDirectories checks that the source directory exists.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.SourceDir); os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s\nHint: use --source-dir to specify the dictionary sources", c.SourceDir)
	}
	return nil
}

// EngineConfig translates the CLI configuration for the build engine.
func (c *Config) EngineConfig(logger *slog.Logger) (engine.Config, error) {
	d, err := dialect.Parse(c.Dialect)
	if err != nil {
		return engine.Config{}, err
	}
	exclude, err := c.excludePattern()
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		SourceDir:        c.SourceDir,
		OutputDir:        c.OutputDir,
		StatePath:        c.StatePath,
		Dialect:          d,
		Encoding:         c.Encoding,
		UnknownEncoding:  c.UnknownEncoding,
		Normalize:        c.Normalize,
		KeepUnnormalized: c.KeepUnnormalized,
		Exclude:          exclude,
		Logger:           logger,
	}, nil
}

// DialectTag returns the parsed dialect.
func (c *Config) DialectTag() (core.Dialect, error) {
	return dialect.Parse(c.Dialect)
}

func (c *Config) excludePattern() (*regexp.Regexp, error) {
	if c.Exclude == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	return re, nil
}

func validOutput(format string) bool {
	for _, f := range outputFormats {
		if f == format {
			return true
		}
	}
	return false
}
