package artifact

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/leapstack-labs/morphdict/pkg/connection"
	"github.com/leapstack-labs/morphdict/pkg/lexicon"
)

// encodeEntries writes the entry count, then per entry the id delta and the
// length-prefixed surface.
func encodeEntries(entries []lexicon.Entry) []byte {
	b := binary.AppendUvarint(nil, uint64(len(entries)))
	prev := 0
	for _, e := range entries {
		b = binary.AppendUvarint(b, uint64(e.ID-prev))
		b = binary.AppendUvarint(b, uint64(len(e.Surface)))
		b = append(b, e.Surface...)
		prev = e.ID
	}
	return b
}

func decodeEntries(b []byte) ([]lexicon.Entry, error) {
	r := bytes.NewReader(b)
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("entry count: %w", errCorruptBlock)
	}

	entries := make([]lexicon.Entry, 0, n)
	prev := 0
	for i := uint64(0); i < n; i++ {
		delta, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d id: %w", i, errCorruptBlock)
		}
		size, err := binary.ReadUvarint(r)
		if err != nil || size > uint64(r.Len()) {
			return nil, fmt.Errorf("entry %d surface: %w", i, errCorruptBlock)
		}
		surface := make([]byte, size)
		if _, err := io.ReadFull(r, surface); err != nil {
			return nil, fmt.Errorf("entry %d surface: %w", i, errCorruptBlock)
		}
		prev += int(delta)
		entries = append(entries, lexicon.Entry{ID: prev, Surface: string(surface)})
	}
	return entries, nil
}

func encodeIDs(ids []int) []byte {
	b := binary.AppendUvarint(nil, uint64(len(ids)))
	prev := 0
	for _, id := range ids {
		b = binary.AppendUvarint(b, uint64(id-prev))
		prev = id
	}
	return b
}

func decodeIDs(b []byte) ([]int, error) {
	r := bytes.NewReader(b)
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("id count: %w", errCorruptBlock)
	}
	ids := make([]int, 0, n)
	prev := 0
	for i := uint64(0); i < n; i++ {
		delta, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("id %d: %w", i, errCorruptBlock)
		}
		prev += int(delta)
		ids = append(ids, prev)
	}
	return ids, nil
}

// writeMatrix writes int32 forward, int32 backward, then the int16 cells,
// all little endian.
func writeMatrix(w io.Writer, m *connection.Matrix) error {
	header := [2]int32{int32(m.ForwardSize()), int32(m.BackwardSize())}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, m.Costs())
}

func readMatrix(r io.Reader) (*connection.Matrix, error) {
	var header [2]int32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("matrix header: %w", err)
	}
	if header[0] <= 0 || header[1] <= 0 || header[0] > connection.MaxSize || header[1] > connection.MaxSize {
		return nil, fmt.Errorf("matrix dimensions %d×%d: %w", header[0], header[1], errCorruptBlock)
	}
	costs := make([]int16, int(header[0])*int(header[1]))
	if err := binary.Read(r, binary.LittleEndian, costs); err != nil {
		return nil, fmt.Errorf("matrix cells: %w", err)
	}
	return connection.FromCosts(int(header[0]), int(header[1]), costs)
}
