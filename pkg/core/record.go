package core

import (
	"fmt"
	"strconv"
)

// NumFields is the number of feature slots in a canonical record.
const NumFields = 16

// Canonical slot positions.
const (
	FieldSurface = iota
	FieldLeftID
	FieldRightID
	FieldWordCost
	FieldPOS1
	FieldPOS2
	FieldPOS3
	FieldPOS4
	FieldConjugationType // start marker for Korean dictionaries
	FieldConjugationForm // end marker for Korean dictionaries
	FieldBaseForm
	FieldReading
	FieldPronunciation
	FieldWordType
	FieldDescription
	FieldIndexedDescription
)

// Aliases used by dictionaries that carry start/end position markers
// in the conjugation slots.
const (
	FieldStartMarker = FieldConjugationType
	FieldEndMarker   = FieldConjugationForm
)

// Record is the canonical lexicon record. Every slot is always set;
// slots a dialect does not supply hold the empty string.
type Record [NumFields]string

// Surface returns the surface form.
func (r Record) Surface() string {
	return r[FieldSurface]
}

// Costs parses the left id, right id and word cost slots as int16 values.
func (r Record) Costs() (left, right, cost int16, err error) {
	if left, err = parseInt16(r[FieldLeftID]); err != nil {
		return 0, 0, 0, fmt.Errorf("left id %q: %w", r[FieldLeftID], ErrFormat)
	}
	if right, err = parseInt16(r[FieldRightID]); err != nil {
		return 0, 0, 0, fmt.Errorf("right id %q: %w", r[FieldRightID], ErrFormat)
	}
	if cost, err = parseInt16(r[FieldWordCost]); err != nil {
		return 0, 0, 0, fmt.Errorf("word cost %q: %w", r[FieldWordCost], ErrFormat)
	}
	return left, right, cost, nil
}

// Features returns the slots after the connection ids and cost.
func (r Record) Features() []string {
	return r[FieldPOS1:]
}

func parseInt16(s string) (int16, error) {
	v, err := strconv.ParseInt(s, 10, 16)
	return int16(v), err
}
