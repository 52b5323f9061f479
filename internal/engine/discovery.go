package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source file names inside a dictionary directory.
const (
	MatrixFile  = "matrix.def"
	CharDefFile = "char.def"
	UnkDefFile  = "unk.def"
	lexiconExt  = ".csv"
)

// Sources lists the input files of one build.
type Sources struct {
	// Lexicon holds the CSV files sorted by name.
	Lexicon []string
	Matrix  string
	CharDef string
	UnkDef  string
}

// Discover locates the sources in dir. matrix.def, char.def and unk.def
// must exist; a directory without CSV files yields an empty lexicon.
func Discover(dir string) (*Sources, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	src := &Sources{
		Matrix:  filepath.Join(dir, MatrixFile),
		CharDef: filepath.Join(dir, CharDefFile),
		UnkDef:  filepath.Join(dir, UnkDefFile),
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), lexiconExt) {
			continue
		}
		src.Lexicon = append(src.Lexicon, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(src.Lexicon)

	for _, p := range []string{src.Matrix, src.CharDef, src.UnkDef} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("missing source: %w", err)
		}
	}
	return src, nil
}

// isSource reports whether a changed file name affects the build.
func isSource(name string) bool {
	base := filepath.Base(name)
	switch base {
	case MatrixFile, CharDefFile, UnkDefFile:
		return true
	}
	return strings.EqualFold(filepath.Ext(base), lexiconExt)
}
