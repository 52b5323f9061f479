package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/morphdict/internal/cli/output"
	"github.com/leapstack-labs/morphdict/pkg/core"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [build-id]",
		Short: "List recorded builds",
		Long: `List the most recent builds from the build catalog.

With a build id, show that build and every diagnostic it recorded.`,
		Example: `  # Show the last 10 builds
  morphdict history

  # Show the diagnostics of one build
  morphdict history 6f1c0e6a-2b5e-4f3c-9a43-0d1e2f3a4b5c`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			r := newRenderer(cmd, cfg)

			store, err := openCatalog(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(args) == 1 {
				b, err := store.GetBuild(args[0])
				if err != nil {
					return err
				}
				diags, err := store.GetDiagnostics(b.ID)
				if err != nil {
					return err
				}
				return renderBuildDetail(r, b, diags)
			}

			builds, err := store.ListBuilds(limit)
			if err != nil {
				return err
			}
			return renderHistory(r, builds)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of builds to list")

	return cmd
}

// HistoryEntry is the JSON shape of one catalog row.
type HistoryEntry struct {
	ID          string           `json:"id"`
	Status      core.BuildStatus `json:"status"`
	Dialect     string           `json:"dialect"`
	SourceDir   string           `json:"source_dir"`
	OutputDir   string           `json:"output_dir"`
	Counts      core.BuildCounts `json:"counts"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	ErrorCode   core.ErrorCode   `json:"error_code,omitempty"`
	Error       string           `json:"error,omitempty"`
}

func toHistoryEntry(b *core.Build) HistoryEntry {
	return HistoryEntry{
		ID:          b.ID,
		Status:      b.Status,
		Dialect:     b.Dialect,
		SourceDir:   b.SourceDir,
		OutputDir:   b.OutputDir,
		Counts:      b.Counts,
		StartedAt:   b.StartedAt,
		CompletedAt: b.CompletedAt,
		ErrorCode:   b.ErrorCode,
		Error:       b.Error,
	}
}

func renderHistory(r *output.Renderer, builds []*core.Build) error {
	if r.EffectiveMode() == output.ModeJSON {
		entries := make([]HistoryEntry, 0, len(builds))
		for _, b := range builds {
			entries = append(entries, toHistoryEntry(b))
		}
		return r.JSON(entries)
	}

	r.Header(1, "Builds")
	if len(builds) == 0 {
		r.Println("No builds recorded.")
		return nil
	}
	rows := make([][]any, 0, len(builds))
	for _, b := range builds {
		rows = append(rows, []any{
			b.ID,
			b.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(b.Status),
			b.Dialect,
			b.Counts.LexiconEntries,
			b.Counts.DiagnosticCount,
			duration(b),
		})
	}
	r.Table([]string{"id", "started", "status", "dialect", "entries", "diagnostics", "duration"}, rows)
	return nil
}

func renderBuildDetail(r *output.Renderer, b *core.Build, diags []*core.BuildDiagnostic) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(struct {
			HistoryEntry
			Diagnostics []DiagnosticOutput `json:"diagnostics"`
		}{toHistoryEntry(b), toDiagnosticOutput(diags)})
	}

	r.Header(1, "Build "+b.ID)
	r.Table([]string{"field", "value"}, [][]any{
		{"status", string(b.Status)},
		{"source", b.SourceDir},
		{"output", b.OutputDir},
		{"dialect", b.Dialect},
		{"lexicon entries", b.Counts.LexiconEntries},
		{"unknown entries", b.Counts.UnknownEntries},
		{"connection matrix", fmt.Sprintf("%d × %d", b.Counts.ForwardSize, b.Counts.BackwardSize)},
		{"started", b.StartedAt.Local().Format(time.RFC3339)},
		{"duration", duration(b)},
	})
	if b.Error != "" {
		r.Println("error (" + string(b.ErrorCode) + "): " + b.Error)
	}

	r.Header(2, "Diagnostics")
	if len(diags) == 0 {
		r.Println("(none)")
		return nil
	}
	rows := make([][]any, 0, len(diags))
	for _, d := range diags {
		rows = append(rows, []any{d.Artifact, location(d.Diagnostic), d.Severity.String(), d.Message})
	}
	r.Table([]string{"artifact", "location", "severity", "message"}, rows)
	return nil
}

func duration(b *core.Build) string {
	if b.CompletedAt == nil {
		return "-"
	}
	return b.CompletedAt.Sub(b.StartedAt).Round(time.Millisecond).String()
}
