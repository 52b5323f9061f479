// Package charclass compiles the character definition source (char.def):
// code point ranges mapped to category names, and per-category rules that
// control unknown-word emission.
//
// A code point has exactly one primary category. When two range lines cover
// the same code point the line processed later wins; assignments are
// overwritten, never merged. Category rules bind by name and are resolved at
// lookup time, so a range may name a category whose rule appears later in
// the source, or never.
package charclass

import (
	"fmt"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/leapstack-labs/morphdict/pkg/core"
)

// assignment is the category data stored per code point.
type assignment struct {
	category string
	compat   []string
}

// Range is a run of consecutive code points sharing one assignment.
type Range struct {
	Low        rune     `yaml:"low"`
	High       rune     `yaml:"high"`
	Category   string   `yaml:"category"`
	Compatible []string `yaml:"compatible,omitempty"`
}

// Table resolves code points to categories and categories to their rules.
type Table struct {
	points map[rune]assignment
	defs   map[string]core.CategoryDefinition
}

// NewTable creates an empty table. Every code point resolves to
// core.DefaultCategory until assigned.
func NewTable() *Table {
	return &Table{
		points: make(map[rune]assignment),
		defs:   make(map[string]core.CategoryDefinition),
	}
}

// Assign maps every code point in [low, high] to category, in ascending
// order, replacing earlier assignments.
func (t *Table) Assign(low, high rune, category string, compatible ...string) error {
	if low < 0 || high > utf8.MaxRune || low > high {
		return fmt.Errorf("range %#x..%#x: %w", low, high, core.ErrFormat)
	}
	a := assignment{category: category}
	if len(compatible) > 0 {
		a.compat = slices.Clone(compatible)
	}
	for cp := low; cp <= high; cp++ {
		t.points[cp] = a
	}
	return nil
}

// Define records the rule for a category, replacing any earlier rule.
func (t *Table) Define(def core.CategoryDefinition) {
	t.defs[def.Name] = def
}

// Category returns the primary category of r.
func (t *Table) Category(r rune) string {
	if a, ok := t.points[r]; ok {
		return a.category
	}
	return core.DefaultCategory
}

// Compatible returns the extra categories listed after the primary one.
func (t *Table) Compatible(r rune) []string {
	return t.points[r].compat
}

// Definition returns the rule bound to a category name.
func (t *Table) Definition(name string) (core.CategoryDefinition, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// Invoke reports whether r's category always emits unknown words.
func (t *Table) Invoke(r rune) bool {
	return t.defs[t.Category(r)].Invoke
}

// Group reports whether consecutive characters of r's category merge.
func (t *Table) Group(r rune) bool {
	return t.defs[t.Category(r)].Group
}

// MaxLength returns the maximum grouped-token length of r's category.
func (t *Table) MaxLength(r rune) int {
	return t.defs[t.Category(r)].Length
}

// Categories returns every category name that is defined or assigned,
// sorted.
func (t *Table) Categories() []string {
	seen := make(map[string]struct{}, len(t.defs))
	for name := range t.defs {
		seen[name] = struct{}{}
	}
	for _, a := range t.points {
		seen[a.category] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns all category rules sorted by name.
func (t *Table) Definitions() []core.CategoryDefinition {
	defs := make([]core.CategoryDefinition, 0, len(t.defs))
	for _, d := range t.defs {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Ranges returns the assignments compacted into maximal runs, sorted by
// code point.
func (t *Table) Ranges() []Range {
	cps := make([]rune, 0, len(t.points))
	for cp := range t.points {
		cps = append(cps, cp)
	}
	slices.Sort(cps)

	var out []Range
	for _, cp := range cps {
		a := t.points[cp]
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.High+1 == cp && last.Category == a.category && slices.Equal(last.Compatible, a.compat) {
				last.High = cp
				continue
			}
		}
		out = append(out, Range{Low: cp, High: cp, Category: a.category, Compatible: a.compat})
	}
	return out
}

// Len returns the number of explicitly assigned code points.
func (t *Table) Len() int {
	return len(t.points)
}
