// Package dialect maps raw lexicon records of each source dialect onto the
// canonical record shape.
//
// The set of dialects is closed, so formatting is a switch over core.Dialect
// rather than an interface: every variant is a pure function from raw fields
// to a core.Record. Formatters do no normalization and no validation beyond
// checking that the raw record is wide enough for the dialect.
package dialect

import (
	"fmt"

	"github.com/leapstack-labs/morphdict/pkg/core"
)

// Minimum raw field counts per dialect.
const (
	ipadicFields  = 13
	unidicFields  = 17
	eunjeonFields = 12
)

// MinFields returns the number of raw fields the dialect reads.
func MinFields(d core.Dialect) int {
	switch d {
	case core.DialectUniDic:
		return unidicFields
	case core.DialectEunjeon:
		return eunjeonFields
	default:
		return ipadicFields
	}
}

// Format maps raw fields to a canonical record.
// It returns core.ErrFieldCount if fields is shorter than MinFields(d).
func Format(d core.Dialect, fields []string) (core.Record, error) {
	if n := MinFields(d); len(fields) < n {
		return core.Record{}, fmt.Errorf("%s record has %d fields, need %d: %w", d, len(fields), n, core.ErrFieldCount)
	}

	switch d {
	case core.DialectIPADIC:
		return formatIPADIC(fields), nil
	case core.DialectUniDic:
		return formatUniDic(fields), nil
	case core.DialectEunjeon:
		return formatEunjeon(fields), nil
	default:
		return core.Record{}, fmt.Errorf("dialect %d: %w", int(d), core.ErrUnknownDialect)
	}
}

// formatIPADIC copies the 13 IPADIC columns in place.
//
//	0 surface, 1-3 left/right/cost, 4-7 pos, 8 conjugation type,
//	9 conjugation form, 10 base form, 11 reading, 12 pronunciation
func formatIPADIC(f []string) core.Record {
	var r core.Record
	copy(r[:ipadicFields], f[:ipadicFields])
	return r
}

// formatUniDic reorders the UniDic lemma and reading columns.
//
//	0-9 as IPADIC, 10 lForm, 11 lemma, 12 orth, 13 pron,
//	14 orthBase, 15 pronBase, 16 goshu
func formatUniDic(f []string) core.Record {
	var r core.Record
	copy(r[:core.FieldBaseForm], f[:core.FieldBaseForm])
	r[core.FieldBaseForm] = f[11]
	r[core.FieldReading] = f[10]
	r[core.FieldPronunciation] = f[13]
	r[core.FieldWordType] = f[16]
	return r
}

// formatEunjeon maps mecab-ko-dic columns. The dictionary has no base form
// and a single reading column that doubles as the pronunciation.
//
//	0-3 surface/left/right/cost, 4 pos, 5 support (T/F), 6 reading,
//	7 type, 8 start pos, 9 end pos, 10 description, 11 indexed description
func formatEunjeon(f []string) core.Record {
	var r core.Record
	copy(r[:core.FieldPOS3], f[:core.FieldPOS3])
	r[core.FieldStartMarker] = f[8]
	r[core.FieldEndMarker] = f[9]
	r[core.FieldBaseForm] = ""
	r[core.FieldReading] = f[6]
	r[core.FieldPronunciation] = f[6]
	r[core.FieldWordType] = f[7]
	r[core.FieldDescription] = f[10]
	r[core.FieldIndexedDescription] = f[11]
	return r
}
