package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/morphdict/internal/cli/config"
	"github.com/leapstack-labs/morphdict/internal/cli/output"
	"github.com/leapstack-labs/morphdict/internal/engine"
	"github.com/leapstack-labs/morphdict/internal/state"
)

func getConfig(cmd *cobra.Command) *config.Config {
	return config.FromContext(cmd.Context())
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) *output.Renderer {
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
}

// ensureStateDir creates the directory holding the build catalog.
func ensureStateDir(statePath string) error {
	if statePath == ":memory:" {
		return nil
	}
	stateDir := filepath.Dir(statePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0o750); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	return nil
}

func createEngine(cmd *cobra.Command, cfg *config.Config) (*engine.Engine, error) {
	if err := cfg.ValidateDirectories(); err != nil {
		return nil, err
	}
	if err := ensureStateDir(cfg.StatePath); err != nil {
		return nil, err
	}
	engineCfg, err := cfg.EngineConfig(config.GetLogger(cmd.Context()))
	if err != nil {
		return nil, err
	}
	return engine.New(engineCfg)
}

func openCatalog(cmd *cobra.Command, cfg *config.Config) (*state.SQLiteStore, error) {
	if err := ensureStateDir(cfg.StatePath); err != nil {
		return nil, err
	}
	store := state.NewSQLiteStore(config.GetLogger(cmd.Context()))
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
