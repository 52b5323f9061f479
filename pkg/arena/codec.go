package arena

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/morphdict/pkg/core"
)

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func readString(b []byte) (string, []byte, error) {
	n, w := binary.Uvarint(b)
	if w <= 0 || uint64(len(b)-w) < n {
		return "", nil, fmt.Errorf("truncated string: %w", core.ErrRecordNotFound)
	}
	b = b[w:]
	return string(b[:n]), b[n:], nil
}

func itoa16(v uint16) string {
	return strconv.Itoa(int(int16(v)))
}
