// Package engine runs dictionary builds: it locates the sources in a
// dictionary directory, runs the compilers, publishes the artifacts, and
// records every build in the catalog.
package engine

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/leapstack-labs/morphdict/internal/state"
	"github.com/leapstack-labs/morphdict/pkg/core"
)

// Engine orchestrates dictionary builds.
type Engine struct {
	cfg    Config
	logger *slog.Logger
	store  core.Store
}

// Config holds engine configuration.
type Config struct {
	// SourceDir holds the *.csv lexicon files, matrix.def, char.def and unk.def.
	SourceDir string
	// OutputDir receives the published artifacts.
	OutputDir string
	// StatePath is the path to the SQLite build catalog.
	StatePath string

	Dialect core.Dialect
	// Encoding of the lexicon CSV files.
	Encoding string
	// UnknownEncoding of char.def and unk.def.
	UnknownEncoding  string
	Normalize        bool
	KeepUnnormalized bool
	// Exclude drops lexicon lines it matches (optional).
	Exclude *regexp.Regexp

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine and opens its build catalog.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing engine",
		"source_dir", cfg.SourceDir,
		"output_dir", cfg.OutputDir,
		"dialect", cfg.Dialect.String())

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open build catalog: %w", err)
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize build catalog: %w", err)
	}

	return &Engine{cfg: cfg, logger: logger, store: store}, nil
}

// Store returns the build catalog.
func (e *Engine) Store() core.Store {
	return e.store
}

// Close releases the build catalog.
func (e *Engine) Close() error {
	return e.store.Close()
}
