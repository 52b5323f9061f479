package artifact

import (
	"encoding/binary"
	"errors"
	"fmt"

	lz4 "github.com/pierrec/lz4/v4"
)

// Block methods.
const (
	methodRaw byte = 0
	methodLZ4 byte = 1
)

var errCorruptBlock = errors.New("artifact: corrupt block")

// compressBlock encodes src as method byte, big-endian uncompressed size,
// then the payload. Incompressible input is stored raw.
func compressBlock(src []byte) ([]byte, error) {
	buf := make([]byte, 5+lz4.CompressBlockBound(len(src)))
	binary.BigEndian.PutUint32(buf[1:], uint32(len(src)))

	n, err := lz4.CompressBlock(src, buf[5:], nil)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(src) {
		buf[0] = methodRaw
		return append(buf[:5], src...), nil
	}
	buf[0] = methodLZ4
	return buf[:5+n], nil
}

func decompressBlock(src []byte) ([]byte, error) {
	if len(src) < 5 {
		return nil, errCorruptBlock
	}
	size := binary.BigEndian.Uint32(src[1:])
	payload := src[5:]

	switch src[0] {
	case methodRaw:
		if uint32(len(payload)) != size {
			return nil, errCorruptBlock
		}
		return payload, nil
	case methodLZ4:
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errCorruptBlock, err)
		}
		if uint32(n) != size {
			return nil, errCorruptBlock
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("%w: method %d", errCorruptBlock, src[0])
	}
}
