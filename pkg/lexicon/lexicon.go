// Package lexicon compiles lexicon CSV sources into an arena of canonical
// records plus an index of (id, surface) pairs for trie construction.
package lexicon

import (
	"github.com/leapstack-labs/morphdict/pkg/arena"
	"github.com/leapstack-labs/morphdict/pkg/core"
)

// Entry associates a record id with the surface form it was appended under.
type Entry struct {
	ID      int
	Surface string
}

// Lexicon is a compiled lexicon. It is immutable once returned by Compile.
type Lexicon struct {
	dialect core.Dialect
	arena   *arena.Arena
	entries []Entry
	diags   []core.Diagnostic
}

// New assembles a lexicon from parts, e.g. ones read back from disk.
func New(d core.Dialect, a *arena.Arena, entries []Entry) *Lexicon {
	return &Lexicon{dialect: d, arena: a, entries: entries}
}

// Record returns the canonical record stored under id.
func (l *Lexicon) Record(id int) (core.Record, error) {
	return l.arena.Record(id)
}

// Entries returns the entry index in append order.
func (l *Lexicon) Entries() []Entry {
	return l.entries
}

// Len returns the number of records.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Dialect returns the source dialect the lexicon was compiled from.
func (l *Lexicon) Dialect() core.Dialect {
	return l.dialect
}

// Arena returns the underlying record store.
func (l *Lexicon) Arena() *arena.Arena {
	return l.arena
}

// Diagnostics returns the per-line defects recovered while compiling.
func (l *Lexicon) Diagnostics() []core.Diagnostic {
	return l.diags
}
