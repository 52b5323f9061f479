package charclass

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/leapstack-labs/morphdict/pkg/core"
	"github.com/leapstack-labs/morphdict/pkg/source"
)

// DefaultSourceName labels errors when Options.SourceName is empty.
const DefaultSourceName = "char.def"

// Options configures Compile.
type Options struct {
	SourceName string
	Logger     *slog.Logger
}

// Compile reads a character definition source.
//
// Lines starting with "0x" assign categories to code points:
//
//	0x0041..0x005A ALPHA
//	0x3005 KANJI NUMERIC
//
// Other lines define category rules:
//
//	KANJI 0 0 2
//
// Any malformed line aborts the compile with core.ErrFormat.
func Compile(r io.Reader, opts Options) (*Table, error) {
	name := opts.SourceName
	if name == "" {
		name = DefaultSourceName
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	t := NewTable()
	err := source.ForEachLine(r, func(lineNo int, raw string) error {
		line := cleanLine(raw)
		if line == "" {
			return nil
		}

		var err error
		if strings.HasPrefix(line, "0x") || strings.HasPrefix(line, "0X") {
			err = t.parseRange(line)
		} else {
			err = t.parseDefinition(line)
		}
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("character categories compiled",
		"code_points", t.Len(),
		"categories", len(t.defs))
	return t, nil
}

// cleanLine strips leading whitespace and comments and collapses
// whitespace runs to single spaces.
func cleanLine(line string) string {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if i := commentStart(line); i >= 0 {
		line = line[:i]
	}
	return strings.Join(strings.Fields(line), " ")
}

// commentStart returns the index of the first '#' not preceded by a
// backslash, or -1.
func commentStart(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] == '#' && (i == 0 || line[i-1] != '\\') {
			return i
		}
	}
	return -1
}

func (t *Table) parseRange(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("range %q has no category: %w", line, core.ErrFormat)
	}

	low, high, err := parseCodePoints(fields[0])
	if err != nil {
		return err
	}
	return t.Assign(low, high, fields[1], fields[2:]...)
}

func parseCodePoints(s string) (low, high rune, err error) {
	lo, hi, isRange := strings.Cut(s, "..")
	if low, err = parseCodePoint(lo); err != nil {
		return 0, 0, err
	}
	if !isRange {
		return low, low, nil
	}
	if high, err = parseCodePoint(hi); err != nil {
		return 0, 0, err
	}
	return low, high, nil
}

func parseCodePoint(s string) (rune, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, fmt.Errorf("code point %q: %w", s, core.ErrFormat)
	}
	return rune(v), nil
}

func (t *Table) parseDefinition(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return fmt.Errorf("category definition %q: expected 4 fields, got %d: %w", line, len(fields), core.ErrFormat)
	}

	var v [3]int
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return fmt.Errorf("category %s field %d %q: %w", fields[0], i+2, f, core.ErrFormat)
		}
		v[i] = n
	}

	t.Define(core.CategoryDefinition{
		Name:   fields[0],
		Invoke: v[0] != 0,
		Group:  v[1] != 0,
		Length: v[2],
	})
	return nil
}
