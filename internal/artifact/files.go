package artifact

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/morphdict/pkg/arena"
	"github.com/leapstack-labs/morphdict/pkg/charclass"
	"github.com/leapstack-labs/morphdict/pkg/connection"
	"github.com/leapstack-labs/morphdict/pkg/core"
	"github.com/leapstack-labs/morphdict/pkg/dialect"
	"github.com/leapstack-labs/morphdict/pkg/lexicon"
	"github.com/leapstack-labs/morphdict/pkg/unknown"
)

// charClassDoc is the YAML shape of charclass.yaml.
type charClassDoc struct {
	Definitions []categoryDoc     `yaml:"definitions"`
	Ranges      []charclass.Range `yaml:"ranges"`
}

type categoryDoc struct {
	Name   string `yaml:"name"`
	Invoke bool   `yaml:"invoke"`
	Group  bool   `yaml:"group"`
	Length int    `yaml:"length"`
}

func writeLexicon(dir string, l *lexicon.Lexicon) error {
	block, err := compressBlock(l.Arena().Bytes())
	if err != nil {
		return fmt.Errorf("failed to compress lexicon arena: %w", err)
	}
	if err := writeFile(filepath.Join(dir, LexiconArenaFile), block); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, LexiconIndexFile), encodeEntries(l.Entries()))
}

// ReadLexicon loads the lexicon arena and entry index from dir.
func ReadLexicon(dir, dialectName string) (*lexicon.Lexicon, error) {
	d, err := dialect.Parse(dialectName)
	if err != nil {
		return nil, err
	}
	block, err := readFile(filepath.Join(dir, LexiconArenaFile))
	if err != nil {
		return nil, err
	}
	raw, err := decompressBlock(block)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LexiconArenaFile, err)
	}
	index, err := readFile(filepath.Join(dir, LexiconIndexFile))
	if err != nil {
		return nil, err
	}
	entries, err := decodeEntries(index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LexiconIndexFile, err)
	}
	return lexicon.New(d, arena.FromBytes(raw, len(entries)), entries), nil
}

func writeConnection(dir string, m *connection.Matrix) error {
	path := filepath.Join(dir, ConnectionFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	if err := writeMatrix(w, m); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// ReadConnection loads connection.bin from dir.
func ReadConnection(dir string) (*connection.Matrix, error) {
	path := filepath.Join(dir, ConnectionFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := readMatrix(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func writeUnknown(dir string, d *unknown.Dictionary) error {
	block, err := compressBlock(d.Arena().Bytes())
	if err != nil {
		return fmt.Errorf("failed to compress unknown arena: %w", err)
	}
	if err := writeFile(filepath.Join(dir, UnknownArenaFile), block); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, UnknownIndexFile), encodeIDs(d.IDs())); err != nil {
		return err
	}
	return writeYAML(filepath.Join(dir, CharClassFile), newCharClassDoc(d.Table()))
}

// ReadUnknown loads the unknown-word arena and its category table from dir.
func ReadUnknown(dir string) (*unknown.Dictionary, error) {
	table, err := ReadCharClass(dir)
	if err != nil {
		return nil, err
	}
	block, err := readFile(filepath.Join(dir, UnknownArenaFile))
	if err != nil {
		return nil, err
	}
	raw, err := decompressBlock(block)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", UnknownArenaFile, err)
	}
	index, err := readFile(filepath.Join(dir, UnknownIndexFile))
	if err != nil {
		return nil, err
	}
	ids, err := decodeIDs(index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", UnknownIndexFile, err)
	}
	return unknown.FromArena(arena.FromBytes(raw, len(ids)), ids, table)
}

// ReadCharClass loads charclass.yaml from dir.
func ReadCharClass(dir string) (*charclass.Table, error) {
	var doc charClassDoc
	if err := readYAML(filepath.Join(dir, CharClassFile), &doc); err != nil {
		return nil, err
	}

	t := charclass.NewTable()
	for _, c := range doc.Definitions {
		t.Define(core.CategoryDefinition{Name: c.Name, Invoke: c.Invoke, Group: c.Group, Length: c.Length})
	}
	for _, r := range doc.Ranges {
		if err := t.Assign(r.Low, r.High, r.Category, r.Compatible...); err != nil {
			return nil, fmt.Errorf("%s: %w", CharClassFile, err)
		}
	}
	return t, nil
}

func newCharClassDoc(t *charclass.Table) *charClassDoc {
	doc := &charClassDoc{Ranges: t.Ranges()}
	for _, c := range t.Definitions() {
		doc.Definitions = append(doc.Definitions, categoryDoc{
			Name:   c.Name,
			Invoke: c.Invoke,
			Group:  c.Group,
			Length: c.Length,
		})
	}
	return doc
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, data)
}

func readYAML(path string, v any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from the artifact directory
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
