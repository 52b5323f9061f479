package connection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/morphdict/internal/testutil"
	"github.com/leapstack-labs/morphdict/pkg/core"
)

func compile(t *testing.T, src string) (*Matrix, error) {
	t.Helper()
	return Compile(strings.NewReader(src), Options{Logger: testutil.NewTestLogger(t)})
}

func cost(t *testing.T, m *Matrix, f, b int) int16 {
	t.Helper()
	c, err := m.Cost(f, b)
	require.NoError(t, err)
	return c
}

func TestCompile_Basic(t *testing.T) {
	m, err := compile(t, "3 3 0\n0 0 100\n1 2 -50\n")
	require.NoError(t, err)

	assert.Equal(t, 3, m.ForwardSize())
	assert.Equal(t, 3, m.BackwardSize())
	for f := 0; f < 3; f++ {
		for b := 0; b < 3; b++ {
			want := int16(0)
			switch {
			case f == 0 && b == 0:
				want = 100
			case f == 1 && b == 2:
				want = -50
			}
			assert.Equal(t, want, cost(t, m, f, b), "cell (%d,%d)", f, b)
		}
	}
	assert.Empty(t, m.Diagnostics())
}

func TestCompile_MalformedLineDoesNotPerturbNeighbours(t *testing.T) {
	m, err := compile(t, "3 3 0\n0 0 100\nx y z\n1 2 -50\n")
	require.NoError(t, err)

	assert.Equal(t, int16(100), cost(t, m, 0, 0))
	assert.Equal(t, int16(-50), cost(t, m, 1, 2))

	require.Len(t, m.Diagnostics(), 1)
	d := m.Diagnostics()[0]
	assert.Equal(t, 3, d.Line)
	assert.Equal(t, DefaultSourceName, d.Source)
	assert.Equal(t, core.SeverityWarning, d.Severity)
}

func TestCompile_PerLineDefects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1 1"},
		{"too many fields", "1 1 1 1"},
		{"non-numeric", "1 a 5"},
		{"cost overflows int16", "1 1 40000"},
		{"forward id out of range", "3 0 7"},
		{"backward id out of range", "0 3 7"},
		{"negative id", "-1 0 7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := compile(t, "3 3 0\n2 2 9\n"+tt.line+"\n0 1 8\n")
			require.NoError(t, err)

			assert.Equal(t, int16(9), cost(t, m, 2, 2))
			assert.Equal(t, int16(8), cost(t, m, 0, 1))
			require.Len(t, m.Diagnostics(), 1)
			assert.Equal(t, 3, m.Diagnostics()[0].Line)

			var nonZero int
			for _, c := range m.Costs() {
				if c != 0 {
					nonZero++
				}
			}
			assert.Equal(t, 2, nonZero)
		})
	}
}

func TestCompile_LaterLineOverwrites(t *testing.T) {
	m, err := compile(t, "2 2 0\n1 1 5\n1 1 6\n")
	require.NoError(t, err)
	assert.Equal(t, int16(6), cost(t, m, 1, 1))
}

func TestCompile_BlankAndCRLFLines(t *testing.T) {
	m, err := compile(t, "2 2 0\r\n\r\n1 0 -3\r\n")
	require.NoError(t, err)
	assert.Equal(t, int16(-3), cost(t, m, 1, 0))
	assert.Empty(t, m.Diagnostics())
}

func TestCompile_FatalHeader(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty source", ""},
		{"two fields", "3 3\n"},
		{"non-numeric", "a 3 0\n"},
		{"zero forward", "0 3 0\n"},
		{"negative backward", "3 -1 0\n"},
		{"non-numeric reserved", "3 3 x\n"},
		{"forward above int16 ids", "40000 3 0\n0 1 5\n"},
		{"product wraps around", "4294967296 4294967296 0\n0 1 5\n"},
		{"beyond int64", "99999999999999999999 3 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := compile(t, tt.src)
			assert.ErrorIs(t, err, core.ErrFormat)
			assert.Nil(t, m)
		})
	}
}

func TestNewMatrix_Size(t *testing.T) {
	tests := []struct {
		name              string
		forward, backward int
		wantErr           bool
	}{
		{"largest", MaxSize, 1, false},
		{"forward too large", MaxSize + 1, 1, true},
		{"backward too large", 1, MaxSize + 1, true},
		{"zero", 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatrix(tt.forward, tt.backward)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrFormat)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Len(t, m.Costs(), tt.forward*tt.backward)
			require.NoError(t, m.Set(tt.forward-1, tt.backward-1, 7))
		})
	}

	_, err := FromCosts(MaxSize+1, 1, make([]int16, MaxSize+1))
	assert.ErrorIs(t, err, core.ErrFormat)
}

func TestMatrix_Bounds(t *testing.T) {
	m, err := NewMatrix(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 42))
	assert.Equal(t, int16(42), m.Costs()[1*3+2])

	_, err = m.Cost(2, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 3, 1), ErrOutOfRange)
}

func TestFromCosts(t *testing.T) {
	m, err := FromCosts(2, 2, []int16{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, int16(3), cost(t, m, 1, 0))

	_, err = FromCosts(2, 2, []int16{1})
	assert.ErrorIs(t, err, core.ErrFormat)
}
