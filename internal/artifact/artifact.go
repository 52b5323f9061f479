// Package artifact persists compiled dictionaries to an output directory and
// reads them back.
//
// A directory is published atomically: every file is written to a sibling
// temporary directory which is renamed into place only once complete, so a
// reader never observes a partial build.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/morphdict/pkg/connection"
	"github.com/leapstack-labs/morphdict/pkg/lexicon"
	"github.com/leapstack-labs/morphdict/pkg/unknown"
)

// File names inside an artifact directory.
const (
	LexiconArenaFile = "lexicon.arena.lz4"
	LexiconIndexFile = "lexicon.index"
	ConnectionFile   = "connection.bin"
	UnknownArenaFile = "unknown.arena.lz4"
	UnknownIndexFile = "unknown.index"
	CharClassFile    = "charclass.yaml"
	ManifestFile     = "manifest.yaml"
)

// ErrIncomplete is returned when a bundle is missing a compiled part.
var ErrIncomplete = errors.New("artifact: incomplete bundle")

// Manifest describes one published build.
type Manifest struct {
	BuildID          string    `yaml:"build_id"`
	CreatedAt        time.Time `yaml:"created_at"`
	Dialect          string    `yaml:"dialect"`
	Encoding         string    `yaml:"encoding"`
	UnknownEncoding  string    `yaml:"unknown_encoding"`
	Normalize        bool      `yaml:"normalize"`
	KeepUnnormalized bool      `yaml:"keep_unnormalized"`
	LexiconEntries   int       `yaml:"lexicon_entries"`
	LexiconBytes     int       `yaml:"lexicon_bytes"`
	UnknownEntries   int       `yaml:"unknown_entries"`
	ForwardSize      int       `yaml:"forward_size"`
	BackwardSize     int       `yaml:"backward_size"`
	Categories       int       `yaml:"categories"`
	Diagnostics      int       `yaml:"diagnostics"`
}

// Bundle is the complete output of one build.
type Bundle struct {
	Manifest Manifest
	Lexicon  *lexicon.Lexicon
	Matrix   *connection.Matrix
	Unknown  *unknown.Dictionary
}

// Write publishes b to dir, replacing any previous contents.
func Write(dir string, b *Bundle) (err error) {
	if b == nil || b.Lexicon == nil || b.Matrix == nil || b.Unknown == nil {
		return ErrIncomplete
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", parent, err)
	}
	tmp, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(tmp)
		}
	}()

	if err := writeLexicon(tmp, b.Lexicon); err != nil {
		return err
	}
	if err := writeConnection(tmp, b.Matrix); err != nil {
		return err
	}
	if err := writeUnknown(tmp, b.Unknown); err != nil {
		return err
	}
	if err := writeYAML(filepath.Join(tmp, ManifestFile), &b.Manifest); err != nil {
		return err
	}

	return publish(tmp, dir)
}

// publish swaps the staged directory into place.
func publish(tmp, dir string) error {
	old := ""
	if _, err := os.Stat(dir); err == nil {
		old = tmp + ".old"
		if err := os.Rename(dir, old); err != nil {
			return fmt.Errorf("failed to move aside %s: %w", dir, err)
		}
	}
	if err := os.Rename(tmp, dir); err != nil {
		if old != "" {
			_ = os.Rename(old, dir)
		}
		return fmt.Errorf("failed to publish %s: %w", dir, err)
	}
	if old != "" {
		_ = os.RemoveAll(old)
	}
	return nil
}

// Read loads every artifact in dir.
func Read(dir string) (*Bundle, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	lex, err := ReadLexicon(dir, m.Dialect)
	if err != nil {
		return nil, err
	}
	matrix, err := ReadConnection(dir)
	if err != nil {
		return nil, err
	}
	unk, err := ReadUnknown(dir)
	if err != nil {
		return nil, err
	}
	return &Bundle{Manifest: *m, Lexicon: lex, Matrix: matrix, Unknown: unk}, nil
}

// ReadManifest loads manifest.yaml from dir.
func ReadManifest(dir string) (*Manifest, error) {
	var m Manifest
	if err := readYAML(filepath.Join(dir, ManifestFile), &m); err != nil {
		return nil, err
	}
	return &m, nil
}
