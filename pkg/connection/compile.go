package connection

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/morphdict/pkg/core"
	"github.com/leapstack-labs/morphdict/pkg/source"
)

// DefaultSourceName labels diagnostics when Options.SourceName is empty.
const DefaultSourceName = "matrix.def"

// Options configures Compile.
type Options struct {
	// SourceName labels diagnostics.
	SourceName string
	// Logger receives one warning per skipped line (optional).
	Logger *slog.Logger
}

// Compile reads a connection-cost source.
//
// The header line "forwardSize backwardSize reserved" fixes the dimensions;
// a missing or malformed header is fatal. Every further line assigns one
// cell. A data line with the wrong arity, a non-int16 token or an id
// outside the dimensions is skipped with a diagnostic and leaves its cell
// at zero.
func Compile(r io.Reader, opts Options) (*Matrix, error) {
	name := opts.SourceName
	if name == "" {
		name = DefaultSourceName
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var m *Matrix
	err := source.ForEachLine(r, func(lineNo int, line string) error {
		if m == nil {
			var err error
			m, err = parseHeader(line)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			logger.Debug("connection matrix allocated", "forward", m.forward, "backward", m.backward)
			return nil
		}

		if strings.TrimSpace(line) == "" {
			return nil
		}
		if err := m.assign(line); err != nil {
			d := core.Diagnostic{Source: name, Line: lineNo, Severity: core.SeverityWarning, Message: err.Error()}
			m.diags = append(m.diags, d)
			logger.Warn("skipping connection cost line", "source", name, "line", lineNo, "text", line, "error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%s: missing header: %w", name, core.ErrFormat)
	}
	return m, nil
}

func parseHeader(line string) (*Matrix, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, fmt.Errorf("header %q: expected 3 fields, got %d: %w", line, len(fields), core.ErrFormat)
	}
	forward, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("header forward size %q: %w", fields[0], core.ErrFormat)
	}
	backward, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("header backward size %q: %w", fields[1], core.ErrFormat)
	}
	if _, err := strconv.Atoi(fields[2]); err != nil {
		return nil, fmt.Errorf("header reserved field %q: %w", fields[2], core.ErrFormat)
	}
	return NewMatrix(forward, backward)
}

func (m *Matrix) assign(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	var v [3]int16
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 10, 16)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) {
				err = numErr.Err
			}
			return fmt.Errorf("field %d %q: %w", i+1, f, err)
		}
		v[i] = int16(n)
	}
	return m.Set(int(v[0]), int(v[1]), v[2])
}
