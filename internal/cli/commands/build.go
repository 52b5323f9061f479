package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/morphdict/internal/cli/output"
	"github.com/leapstack-labs/morphdict/internal/engine"
	"github.com/leapstack-labs/morphdict/pkg/core"
)

// maxListedDiagnostics caps the diagnostics printed after a build.
const maxListedDiagnostics = 20

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	var (
		watch    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile dictionary sources into artifacts",
		Long: `Compile the lexicon CSV files, matrix.def, char.def and unk.def found in
the source directory and publish the artifacts to the output directory.

Every build is recorded in the build catalog together with the lines that
were skipped. A failed build leaves the previous artifacts in place.

Output adapts to environment:
  - Terminal: tables
  - Piped/Scripted: Markdown format

Use --output to override: auto, text, markdown, json`,
		Example: `  # Build an IPADIC dictionary
  morphdict build --source-dir ./mecab-ipadic --output-dir ./build

  # Build a UniDic dictionary with NFKC normalization
  morphdict build --dialect unidic --normalize

  # Rebuild whenever a source changes
  morphdict build --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)
			r := newRenderer(cmd, cfg)

			eng, err := createEngine(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = eng.Close() }()

			if watch {
				return eng.Watch(cmd.Context(), debounce, func(res *engine.Result, err error) {
					if err != nil {
						r.Warn("build failed: %v", err)
					}
					if res != nil {
						_ = renderBuild(r, res, eng.Store())
					}
				})
			}

			res, err := eng.Build(cmd.Context())
			if res != nil {
				if rerr := renderBuild(r, res, eng.Store()); rerr != nil && err == nil {
					err = rerr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild when source files change")
	cmd.Flags().DurationVar(&debounce, "debounce", engine.DefaultDebounce, "Quiet period before a watched rebuild")

	return cmd
}

// BuildSummary is the JSON shape of a build result.
type BuildSummary struct {
	ID          string             `json:"id"`
	Status      core.BuildStatus   `json:"status"`
	Dialect     string             `json:"dialect"`
	SourceDir   string             `json:"source_dir"`
	OutputDir   string             `json:"output_dir"`
	Counts      core.BuildCounts   `json:"counts"`
	DurationMS  int64              `json:"duration_ms"`
	ErrorCode   core.ErrorCode     `json:"error_code,omitempty"`
	Error       string             `json:"error,omitempty"`
	Diagnostics []DiagnosticOutput `json:"diagnostics"`
}

// DiagnosticOutput is the JSON shape of one diagnostic.
type DiagnosticOutput struct {
	Artifact string `json:"artifact"`
	Source   string `json:"source"`
	Line     int    `json:"line"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func renderBuild(r *output.Renderer, res *engine.Result, store core.Store) error {
	b := res.Build
	diags, err := store.GetDiagnostics(b.ID)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		summary := BuildSummary{
			ID:          b.ID,
			Status:      b.Status,
			Dialect:     b.Dialect,
			SourceDir:   b.SourceDir,
			OutputDir:   b.OutputDir,
			Counts:      b.Counts,
			DurationMS:  res.Duration.Milliseconds(),
			ErrorCode:   b.ErrorCode,
			Error:       b.Error,
			Diagnostics: toDiagnosticOutput(diags),
		}
		return r.JSON(summary)
	}

	r.Header(1, "Build "+b.ID)
	r.Table([]string{"field", "value"}, [][]any{
		{"status", string(b.Status)},
		{"dialect", b.Dialect},
		{"lexicon entries", b.Counts.LexiconEntries},
		{"unknown entries", b.Counts.UnknownEntries},
		{"connection matrix", fmt.Sprintf("%d × %d", b.Counts.ForwardSize, b.Counts.BackwardSize)},
		{"categories", b.Counts.Categories},
		{"diagnostics", b.Counts.DiagnosticCount},
		{"duration", res.Duration.Round(time.Millisecond).String()},
	})
	if b.Error != "" {
		r.Println("error (" + string(b.ErrorCode) + "): " + b.Error)
	}

	if len(diags) > 0 {
		r.Header(2, "Diagnostics")
		rows := make([][]any, 0, min(len(diags), maxListedDiagnostics))
		for _, d := range diags[:min(len(diags), maxListedDiagnostics)] {
			rows = append(rows, []any{d.Artifact, location(d.Diagnostic), d.Severity.String(), d.Message})
		}
		r.Table([]string{"artifact", "location", "severity", "message"}, rows)
		if len(diags) > maxListedDiagnostics {
			r.Println(fmt.Sprintf("... %d more (see `morphdict history %s`)", len(diags)-maxListedDiagnostics, b.ID))
		}
	}
	return nil
}

func toDiagnosticOutput(diags []*core.BuildDiagnostic) []DiagnosticOutput {
	out := make([]DiagnosticOutput, 0, len(diags))
	for _, d := range diags {
		out = append(out, DiagnosticOutput{
			Artifact: d.Artifact,
			Source:   d.Source,
			Line:     d.Line,
			Severity: d.Severity.String(),
			Message:  d.Message,
		})
	}
	return out
}

// location renders source:line, or just the source for build-level entries.
func location(d core.Diagnostic) string {
	if d.Line == 0 {
		return d.Source
	}
	return fmt.Sprintf("%s:%d", d.Source, d.Line)
}
