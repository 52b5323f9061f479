// Package unknown compiles the unknown-word dictionary (unk.def): the
// fallback entries a tokenizer emits for text no lexicon entry covers,
// packaged with the character category table that decides when they apply.
package unknown

import (
	"github.com/leapstack-labs/morphdict/pkg/arena"
	"github.com/leapstack-labs/morphdict/pkg/charclass"
	"github.com/leapstack-labs/morphdict/pkg/core"
)

// NGramCategory is the surface of the synthetic catch-all entry.
const NGramCategory = "NGRAM"

// NGramEntry is the catch-all n-gram record appended before any source
// line: connection ids 5/5 and the minimum int16 cost.
const NGramEntry = "NGRAM,5,5,-32768,-,*,*,*,*,*,*"

// Dictionary is a compiled unknown-word dictionary.
type Dictionary struct {
	arena      *arena.Arena
	table      *charclass.Table
	ids        []int
	byCategory map[string][]int
}

func newDictionary(a *arena.Arena, table *charclass.Table) *Dictionary {
	return &Dictionary{
		arena:      a,
		table:      table,
		byCategory: make(map[string][]int),
	}
}

// FromArena rebuilds a dictionary from an arena read back from disk.
// ids must list the record offsets in append order.
func FromArena(a *arena.Arena, ids []int, table *charclass.Table) (*Dictionary, error) {
	d := newDictionary(a, table)
	for _, id := range ids {
		r, err := a.Record(id)
		if err != nil {
			return nil, err
		}
		d.index(id, r.Surface())
	}
	return d, nil
}

func (d *Dictionary) index(id int, category string) {
	d.ids = append(d.ids, id)
	d.byCategory[category] = append(d.byCategory[category], id)
}

// Record returns the record stored under id.
func (d *Dictionary) Record(id int) (core.Record, error) {
	return d.arena.Record(id)
}

// Entries returns the ids of the entries defined for a category, in
// source order.
func (d *Dictionary) Entries(category string) []int {
	return d.byCategory[category]
}

// IDs returns every entry id in append order. The first is the n-gram entry.
func (d *Dictionary) IDs() []int {
	return d.ids
}

// Len returns the number of entries, including the n-gram entry.
func (d *Dictionary) Len() int {
	return len(d.ids)
}

// Table returns the character category table bundled with the dictionary.
func (d *Dictionary) Table() *charclass.Table {
	return d.table
}

// Arena returns the underlying record store.
func (d *Dictionary) Arena() *arena.Arena {
	return d.arena
}
