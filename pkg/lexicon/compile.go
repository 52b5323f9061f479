package lexicon

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/leapstack-labs/morphdict/pkg/arena"
	"github.com/leapstack-labs/morphdict/pkg/core"
	"github.com/leapstack-labs/morphdict/pkg/dialect"
	"github.com/leapstack-labs/morphdict/pkg/source"
)

// MinimumFields is the number of raw fields below which a line is dropped.
const MinimumFields = 11

// defaultCapacity is the initial arena size in bytes; the arena grows as needed.
const defaultCapacity = 10 << 20

// Options configures a lexicon build.
type Options struct {
	Dialect core.Dialect
	// Encoding of the source files (see source.Lookup).
	Encoding string
	// Normalize applies NFKC to every field before formatting.
	Normalize bool
	// KeepUnnormalized also appends the original spelling of entries whose
	// surface changes under NFKC. Only meaningful with Normalize.
	KeepUnnormalized bool
	// Exclude drops raw lines it matches.
	Exclude *regexp.Regexp
	// Capacity is the initial arena size in bytes (default 10 MiB).
	Capacity int
	Logger   *slog.Logger
}

// Compiler accumulates lexicon records. A Compiler serves one build.
type Compiler struct {
	opts    Options
	logger  *slog.Logger
	arena   *arena.Arena
	entries []Entry
	diags   []core.Diagnostic
	skipped int
}

// NewCompiler creates a compiler for one build.
func NewCompiler(opts Options) *Compiler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Compiler{
		opts:   opts,
		logger: logger,
		arena:  arena.New(capacity),
	}
}

// Compile builds a lexicon from the given CSV files, in order.
// Per-line defects are recorded as diagnostics; I/O errors and records the
// dialect formatter cannot handle abort the build and no lexicon is returned.
func Compile(paths []string, opts Options) (*Lexicon, error) {
	c := NewCompiler(opts)
	for _, p := range paths {
		if err := c.AddFile(p); err != nil {
			return nil, err
		}
	}
	return c.Lexicon(), nil
}

// AddFile appends every line of the file at path.
func (c *Compiler) AddFile(path string) error {
	c.logger.Debug("reading lexicon source", "path", path, "encoding", c.opts.Encoding)
	before := len(c.entries)

	err := source.ReadFile(source.File{Path: path, Encoding: c.opts.Encoding}, func(lineNo int, line string) error {
		return c.AddLine(path, lineNo, line)
	})
	if err != nil {
		return err
	}

	c.logger.Debug("lexicon source done", "path", path, "entries", len(c.entries)-before)
	return nil
}

// AddLine processes one raw source line. name and lineNo label diagnostics.
func (c *Compiler) AddLine(name string, lineNo int, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if c.opts.Exclude != nil && c.opts.Exclude.MatchString(line) {
		c.skipped++
		return nil
	}

	fields, err := source.SplitCSV(line)
	if err != nil {
		c.warn(name, lineNo, line, fmt.Sprintf("invalid CSV: %v", err))
		return nil
	}
	if len(fields) < MinimumFields {
		c.warn(name, lineNo, line, fmt.Sprintf("expected at least %d fields, got %d", MinimumFields, len(fields)))
		return nil
	}

	if !c.opts.Normalize {
		return c.add(name, lineNo, fields)
	}

	normalized := normalizeFields(fields)
	if err := c.add(name, lineNo, normalized); err != nil {
		return err
	}
	if c.opts.KeepUnnormalized && normalized[core.FieldSurface] != fields[core.FieldSurface] {
		return c.add(name, lineNo, fields)
	}
	return nil
}

// Lexicon hands the accumulated records to a Lexicon. The compiler must not
// be used afterwards.
func (c *Compiler) Lexicon() *Lexicon {
	c.logger.Info("lexicon compiled",
		"dialect", c.opts.Dialect.String(),
		"entries", len(c.entries),
		"bytes", c.arena.Size(),
		"excluded", c.skipped,
		"dropped", len(c.diags))

	l := &Lexicon{
		dialect: c.opts.Dialect,
		arena:   c.arena,
		entries: c.entries,
		diags:   c.diags,
	}
	c.arena, c.entries, c.diags = nil, nil, nil
	return l
}

func (c *Compiler) add(name string, lineNo int, fields []string) error {
	r, err := dialect.Format(c.opts.Dialect, fields)
	if err != nil {
		return fmt.Errorf("%s:%d: %w", name, lineNo, err)
	}
	id, err := c.arena.Append(r)
	if err != nil {
		return fmt.Errorf("%s:%d: %w", name, lineNo, err)
	}
	c.entries = append(c.entries, Entry{ID: id, Surface: r.Surface()})
	return nil
}

func (c *Compiler) warn(name string, lineNo int, line, msg string) {
	c.diags = append(c.diags, core.Diagnostic{
		Source:   name,
		Line:     lineNo,
		Severity: core.SeverityWarning,
		Message:  msg,
	})
	c.logger.Warn("skipping lexicon line", "source", name, "line", lineNo, "text", line, "reason", msg)
}

func normalizeFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = norm.NFKC.String(f)
	}
	return out
}
