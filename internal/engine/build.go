package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/leapstack-labs/morphdict/internal/artifact"
	"github.com/leapstack-labs/morphdict/pkg/connection"
	"github.com/leapstack-labs/morphdict/pkg/core"
	"github.com/leapstack-labs/morphdict/pkg/lexicon"
	"github.com/leapstack-labs/morphdict/pkg/unknown"
)

// Artifact names used when recording diagnostics.
const (
	ArtifactLexicon    = "lexicon"
	ArtifactConnection = "connection"
	ArtifactUnknown    = "unknown"
	// ArtifactBuild holds the error that aborted a build.
	ArtifactBuild = "build"
)

// Result is the outcome of one build.
type Result struct {
	Build    *core.Build
	Bundle   *artifact.Bundle
	Duration time.Duration
}

// Build compiles every source once, sequentially, publishes the artifacts
// and records the build. A failed build is recorded with its error and
// leaves any previously published artifacts in place.
func (e *Engine) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	b := &core.Build{
		SourceDir: e.cfg.SourceDir,
		OutputDir: e.cfg.OutputDir,
		Dialect:   e.cfg.Dialect.String(),
	}
	if err := e.store.CreateBuild(b); err != nil {
		return nil, err
	}

	e.logger.Info("starting build", "build_id", b.ID, "source_dir", b.SourceDir)

	bundle, err := e.compile(ctx, b)
	result := &Result{Build: b, Bundle: bundle, Duration: time.Since(start)}
	if err != nil {
		e.logger.Error("build failed", "build_id", b.ID, "error", err)
		fatal := core.Diagnostic{Source: e.cfg.SourceDir, Severity: core.SeverityError, Message: err.Error()}
		if rerr := e.record(b, ArtifactBuild, []core.Diagnostic{fatal}); rerr != nil {
			e.logger.Warn("failed to record build error", "build_id", b.ID, "error", rerr)
		}
		if cerr := e.store.CompleteBuild(b.ID, core.BuildStatusFailed, b.Counts, err); cerr != nil {
			e.logger.Warn("failed to record build", "build_id", b.ID, "error", cerr)
		}
		e.refresh(result)
		return result, err
	}

	if err := e.store.CompleteBuild(b.ID, core.BuildStatusCompleted, b.Counts, nil); err != nil {
		return result, fmt.Errorf("failed to record build: %w", err)
	}
	e.refresh(result)

	e.logger.Info("build completed",
		"build_id", b.ID,
		"lexicon_entries", b.Counts.LexiconEntries,
		"unknown_entries", b.Counts.UnknownEntries,
		"diagnostics", b.Counts.DiagnosticCount,
		"duration_ms", result.Duration.Milliseconds())

	return result, nil
}

// refresh reloads the catalog row so the result carries the stored outcome.
func (e *Engine) refresh(r *Result) {
	if stored, err := e.store.GetBuild(r.Build.ID); err == nil {
		r.Build = stored
	}
}

func (e *Engine) compile(ctx context.Context, b *core.Build) (*artifact.Bundle, error) {
	src, err := Discover(e.cfg.SourceDir)
	if err != nil {
		return nil, err
	}
	var notes []core.Diagnostic
	if len(src.Lexicon) == 0 {
		e.logger.Warn("no lexicon files found", "source_dir", e.cfg.SourceDir)
		notes = append(notes, core.Diagnostic{
			Source:   e.cfg.SourceDir,
			Severity: core.SeverityInfo,
			Message:  "no lexicon files found; lexicon is empty",
		})
	}

	e.logger.Debug("compiling lexicon", "files", len(src.Lexicon))
	lex, err := lexicon.Compile(src.Lexicon, lexicon.Options{
		Dialect:          e.cfg.Dialect,
		Encoding:         e.cfg.Encoding,
		Normalize:        e.cfg.Normalize,
		KeepUnnormalized: e.cfg.KeepUnnormalized,
		Exclude:          e.cfg.Exclude,
		Logger:           e.logger,
	})
	if err != nil {
		return nil, err
	}
	if err := e.record(b, ArtifactLexicon, append(notes, lex.Diagnostics()...)); err != nil {
		return nil, err
	}
	b.Counts.LexiconEntries = lex.Len()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("compiling connection costs", "file", src.Matrix)
	matrix, err := compileMatrix(src.Matrix, e.logger)
	if err != nil {
		return nil, err
	}
	if err := e.record(b, ArtifactConnection, matrix.Diagnostics()); err != nil {
		return nil, err
	}
	b.Counts.ForwardSize = matrix.ForwardSize()
	b.Counts.BackwardSize = matrix.BackwardSize()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("compiling unknown words", "char_def", src.CharDef, "unk_def", src.UnkDef)
	unk, err := unknown.CompileFiles(src.UnkDef, src.CharDef, e.cfg.UnknownEncoding, e.logger)
	if err != nil {
		return nil, err
	}
	b.Counts.UnknownEntries = unk.Len()
	b.Counts.Categories = len(unk.Table().Categories())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundle := &artifact.Bundle{
		Manifest: artifact.Manifest{
			BuildID:          b.ID,
			CreatedAt:        time.Now().UTC(),
			Dialect:          e.cfg.Dialect.String(),
			Encoding:         e.cfg.Encoding,
			UnknownEncoding:  e.cfg.UnknownEncoding,
			Normalize:        e.cfg.Normalize,
			KeepUnnormalized: e.cfg.KeepUnnormalized,
			LexiconEntries:   b.Counts.LexiconEntries,
			LexiconBytes:     lex.Arena().Size(),
			UnknownEntries:   b.Counts.UnknownEntries,
			ForwardSize:      b.Counts.ForwardSize,
			BackwardSize:     b.Counts.BackwardSize,
			Categories:       b.Counts.Categories,
			Diagnostics:      b.Counts.DiagnosticCount,
		},
		Lexicon: lex,
		Matrix:  matrix,
		Unknown: unk,
	}
	if err := artifact.Write(e.cfg.OutputDir, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

func compileMatrix(path string, logger *slog.Logger) (*connection.Matrix, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the configured source directory
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return connection.Compile(f, connection.Options{
		SourceName: path,
		Logger:     logger,
	})
}

// record stores diagnostics against the build and adds them to its count.
func (e *Engine) record(b *core.Build, name string, diags []core.Diagnostic) error {
	if err := e.store.RecordDiagnostics(b.ID, name, diags); err != nil {
		return err
	}
	b.Counts.DiagnosticCount += len(diags)
	return nil
}
