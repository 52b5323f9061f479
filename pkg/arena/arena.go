// Package arena provides the append-only serialization buffer that backs
// compiled dictionaries.
//
// An Arena owns one contiguous byte region. Append encodes a canonical
// record at the end of the region and returns the offset it was written at;
// that offset is the record's permanent id. Ids are plain indices into the
// region, so a compiled dictionary can be written out and read back without
// any pointer fix-ups.
//
// Record layout at an offset:
//
//	int16 left id, int16 right id, int16 word cost (little endian)
//	13 × (uvarint length, UTF-8 bytes): surface, then slots 4..15
//
// The id and cost slots are stored as integers, so Record returns them in
// canonical decimal form: "0100", "+5" and "-007" read back as "100", "5"
// and "-7". Every other slot round-trips byte for byte.
package arena

import (
	"encoding/binary"
	"fmt"

	"github.com/leapstack-labs/morphdict/pkg/core"
)

const headerSize = 6

// Arena is an append-only record store.
type Arena struct {
	buf   []byte
	count int
}

// New creates an arena with the given initial capacity in bytes.
func New(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{buf: make([]byte, 0, capacity)}
}

// FromBytes wraps an encoded region, e.g. one read back from disk.
// The arena takes ownership of b. count is the number of records in b.
func FromBytes(b []byte, count int) *Arena {
	return &Arena{buf: b, count: count}
}

// Append encodes r and returns its offset.
// The id/cost slots must parse as int16; otherwise core.ErrFormat is
// returned and the arena is left unchanged.
func (a *Arena) Append(r core.Record) (int, error) {
	left, right, cost, err := r.Costs()
	if err != nil {
		return 0, err
	}

	offset := len(a.buf)
	a.buf = binary.LittleEndian.AppendUint16(a.buf, uint16(left))
	a.buf = binary.LittleEndian.AppendUint16(a.buf, uint16(right))
	a.buf = binary.LittleEndian.AppendUint16(a.buf, uint16(cost))

	a.buf = appendString(a.buf, r[core.FieldSurface])
	for _, f := range r.Features() {
		a.buf = appendString(a.buf, f)
	}
	a.count++
	return offset, nil
}

// Record decodes the record stored at id.
func (a *Arena) Record(id int) (core.Record, error) {
	var r core.Record
	if id < 0 || id+headerSize > len(a.buf) {
		return r, fmt.Errorf("id %d: %w", id, core.ErrRecordNotFound)
	}

	b := a.buf[id:]
	r[core.FieldLeftID] = itoa16(binary.LittleEndian.Uint16(b[0:]))
	r[core.FieldRightID] = itoa16(binary.LittleEndian.Uint16(b[2:]))
	r[core.FieldWordCost] = itoa16(binary.LittleEndian.Uint16(b[4:]))
	b = b[headerSize:]

	var err error
	if r[core.FieldSurface], b, err = readString(b); err != nil {
		return r, fmt.Errorf("id %d surface: %w", id, err)
	}
	for i := core.FieldPOS1; i < core.NumFields; i++ {
		if r[i], b, err = readString(b); err != nil {
			return r, fmt.Errorf("id %d slot %d: %w", id, i, err)
		}
	}
	return r, nil
}

// Costs returns the left id, right id and word cost of the record at id
// without decoding its text slots.
func (a *Arena) Costs(id int) (left, right, cost int16, err error) {
	if id < 0 || id+headerSize > len(a.buf) {
		return 0, 0, 0, fmt.Errorf("id %d: %w", id, core.ErrRecordNotFound)
	}
	b := a.buf[id:]
	return int16(binary.LittleEndian.Uint16(b[0:])),
		int16(binary.LittleEndian.Uint16(b[2:])),
		int16(binary.LittleEndian.Uint16(b[4:])), nil
}

// Len returns the number of records appended.
func (a *Arena) Len() int {
	return a.count
}

// Size returns the number of bytes in use.
func (a *Arena) Size() int {
	return len(a.buf)
}

// Bytes returns the encoded region. The slice aliases the arena.
func (a *Arena) Bytes() []byte {
	return a.buf
}
