package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/morphdict/pkg/core"
)

func record(surface, left, right, cost string, rest ...string) core.Record {
	r := core.Record{surface, left, right, cost}
	copy(r[core.FieldPOS1:], rest)
	return r
}

func TestArena_AppendAndRecord(t *testing.T) {
	a := New(0)

	r1 := record("東京", "1293", "1293", "3003", "名詞", "固有名詞", "地域", "一般", "*", "*", "東京", "トウキョウ", "トーキョー")
	r2 := record("𠮷野家", "-5", "32767", "-32768", "名詞")

	id1, err := a.Append(r1)
	require.NoError(t, err)
	id2, err := a.Append(r2)
	require.NoError(t, err)

	assert.Equal(t, 0, id1)
	assert.Greater(t, id2, id1)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, a.Size(), len(a.Bytes()))

	got1, err := a.Record(id1)
	require.NoError(t, err)
	assert.Equal(t, r1, got1)

	got2, err := a.Record(id2)
	require.NoError(t, err)
	assert.Equal(t, r2, got2)

	left, right, cost, err := a.Costs(id2)
	require.NoError(t, err)
	assert.Equal(t, int16(-5), left)
	assert.Equal(t, int16(32767), right)
	assert.Equal(t, int16(-32768), cost)
}

func TestArena_CanonicalizesCostSlots(t *testing.T) {
	a := New(0)
	id, err := a.Append(record("京都", "0100", "+5", "-007", "名詞"))
	require.NoError(t, err)

	got, err := a.Record(id)
	require.NoError(t, err)
	assert.Equal(t, "100", got[core.FieldLeftID])
	assert.Equal(t, "5", got[core.FieldRightID])
	assert.Equal(t, "-7", got[core.FieldWordCost])
	assert.Equal(t, "京都", got.Surface())
	assert.Equal(t, "名詞", got[core.FieldPOS1])
}

func TestArena_AppendRejectsBadCost(t *testing.T) {
	a := New(16)
	_, err := a.Append(record("x", "1", "1", "not-a-number"))
	assert.ErrorIs(t, err, core.ErrFormat)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.Size())
}

func TestArena_RecordOutOfRange(t *testing.T) {
	a := New(0)
	_, err := a.Record(0)
	assert.ErrorIs(t, err, core.ErrRecordNotFound)

	_, err = a.Append(record("a", "0", "0", "0"))
	require.NoError(t, err)

	_, err = a.Record(-1)
	assert.ErrorIs(t, err, core.ErrRecordNotFound)
	_, err = a.Record(a.Size())
	assert.ErrorIs(t, err, core.ErrRecordNotFound)
	_, _, _, err = a.Costs(a.Size())
	assert.ErrorIs(t, err, core.ErrRecordNotFound)
}

func TestArena_FromBytes(t *testing.T) {
	a := New(0)
	r := record("ｱ", "1", "2", "3", "記号")
	id, err := a.Append(r)
	require.NoError(t, err)

	b := make([]byte, a.Size())
	copy(b, a.Bytes())

	restored := FromBytes(b, a.Len())
	got, err := restored.Record(id)
	require.NoError(t, err)
	assert.Equal(t, r, got)
	assert.Equal(t, 1, restored.Len())
}

func TestArena_DistinctOffsetsForIdenticalRecords(t *testing.T) {
	a := New(0)
	r := record("同じ", "1", "1", "1")
	id1, err := a.Append(r)
	require.NoError(t, err)
	id2, err := a.Append(r)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}
