package unknown

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/morphdict/pkg/arena"
	"github.com/leapstack-labs/morphdict/pkg/charclass"
	"github.com/leapstack-labs/morphdict/pkg/core"
	"github.com/leapstack-labs/morphdict/pkg/source"
)

// DefaultEncoding is the encoding of IPADIC's unk.def and char.def.
const DefaultEncoding = "euc-jp"

// minFields covers the surface and the three numeric slots.
const minFields = 4

const defaultCapacity = 64 << 10

// Options configures Compile.
type Options struct {
	SourceName string
	Logger     *slog.Logger
}

// Compile builds an unknown-word dictionary from unk.def lines and attaches
// table to it. Lines are placed into canonical slots positionally; they
// already use the canonical column order. table is not consulted.
func Compile(r io.Reader, table *charclass.Table, opts Options) (*Dictionary, error) {
	name := opts.SourceName
	if name == "" {
		name = "unk.def"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if table == nil {
		table = charclass.NewTable()
	}

	d := newDictionary(arena.New(defaultCapacity), table)
	if err := d.put(NGramEntry); err != nil {
		return nil, fmt.Errorf("n-gram entry: %w", err)
	}

	err := source.ForEachLine(r, func(lineNo int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		if err := d.put(line); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("unknown-word dictionary compiled",
		"entries", d.Len(),
		"categories", len(d.byCategory))
	return d, nil
}

// CompileFiles reads char.def and then unk.def, both in the given encoding
// (DefaultEncoding when empty).
func CompileFiles(unkPath, charPath, encoding string, logger *slog.Logger) (*Dictionary, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	var table *charclass.Table
	if err := readFile(charPath, encoding, func(r io.Reader) (err error) {
		table, err = charclass.Compile(r, charclass.Options{SourceName: charPath, Logger: logger})
		return err
	}); err != nil {
		return nil, err
	}

	var d *Dictionary
	if err := readFile(unkPath, encoding, func(r io.Reader) (err error) {
		d, err = Compile(r, table, Options{SourceName: unkPath, Logger: logger})
		return err
	}); err != nil {
		return nil, err
	}
	return d, nil
}

func readFile(path, encoding string, fn func(io.Reader) error) error {
	f, err := source.Open(source.File{Path: path, Encoding: encoding})
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return fn(f)
}

func (d *Dictionary) put(line string) error {
	fields, err := source.SplitCSV(line)
	if err != nil {
		return fmt.Errorf("invalid CSV: %v: %w", err, core.ErrFormat)
	}
	if len(fields) < minFields || len(fields) > core.NumFields {
		return fmt.Errorf("%d fields, need %d..%d: %w", len(fields), minFields, core.NumFields, core.ErrFieldCount)
	}

	var r core.Record
	copy(r[:], fields)
	id, err := d.arena.Append(r)
	if err != nil {
		return err
	}
	d.index(id, r.Surface())
	return nil
}
