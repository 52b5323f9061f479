package core

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Costs(t *testing.T) {
	var r Record
	r[FieldSurface] = "東京"
	r[FieldLeftID] = "1293"
	r[FieldRightID] = "-1293"
	r[FieldWordCost] = "3003"

	left, right, cost, err := r.Costs()
	require.NoError(t, err)
	assert.Equal(t, int16(1293), left)
	assert.Equal(t, int16(-1293), right)
	assert.Equal(t, int16(3003), cost)
	assert.Equal(t, "東京", r.Surface())
	assert.Len(t, r.Features(), NumFields-FieldPOS1)
}

func TestRecord_CostsRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		slot int
		val  string
	}{
		{"left overflow", FieldLeftID, "32768"},
		{"right non-numeric", FieldRightID, "x"},
		{"cost empty", FieldWordCost, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{"a", "0", "0", "0"}
			r[tt.slot] = tt.val
			_, _, _, err := r.Costs()
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestDialect_String(t *testing.T) {
	assert.Equal(t, "ipadic", DialectIPADIC.String())
	assert.Equal(t, "unidic", DialectUniDic.String())
	assert.Equal(t, "eunjeon", DialectEunjeon.String())
	assert.Equal(t, "unknown", Dialect(42).String())
}

func TestParseSeverity(t *testing.T) {
	s, ok := ParseSeverity("ERROR")
	assert.True(t, ok)
	assert.Equal(t, SeverityError, s)

	s, ok = ParseSeverity("bogus")
	assert.False(t, ok)
	assert.Equal(t, SeverityWarning, s)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Source: "matrix.def", Line: 3, Severity: SeverityWarning, Message: "expected 3 fields"}
	assert.Equal(t, "matrix.def:3: warning: expected 3 fields", d.String())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, CodeUnknown, Classify(nil))
	assert.Equal(t, CodeFormat, Classify(fmt.Errorf("line 2: %w", ErrFormat)))
	assert.Equal(t, CodeFormat, Classify(fmt.Errorf("line 2: %w", ErrFieldCount)))
	assert.Equal(t, CodeConfig, Classify(ErrUnknownDialect))
	assert.Equal(t, CodeIO, Classify(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}))
	assert.Equal(t, CodeUnknown, Classify(errors.New("boom")))
}
