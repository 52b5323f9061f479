// Package source reads line-oriented dictionary sources under a declared
// character encoding.
//
// Dictionary sources are frequently distributed in legacy encodings (IPADIC
// ships EUC-JP, older UniDic releases Shift_JIS). Decoding happens here so
// every compiler sees UTF-8 text.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when a source does not declare one.
const DefaultEncoding = "utf-8"

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

// File is a source file and its declared encoding.
type File struct {
	Path     string
	Encoding string
}

// LineFunc receives each line without its terminator. lineNo is 1-based.
type LineFunc func(lineNo int, line string) error

// Lookup resolves an encoding name (WHATWG labels: "euc-jp", "shift_jis",
// "utf-8", ...). UTF-8 input has a leading byte order mark removed.
func Lookup(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	if enc == unicode.UTF8 {
		return unicode.UTF8BOM, nil
	}
	return enc, nil
}

// NewReader wraps r so it yields UTF-8 decoded from the named encoding.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// ForEachLine calls fn for every line of r. Scanning stops at the first
// error returned by fn or by the reader.
func ForEachLine(r io.Reader, fn LineFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := fn(lineNo, strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return nil
}

// Open opens f and returns its contents decoded to UTF-8.
// The caller must Close the returned reader.
func Open(f File) (io.ReadCloser, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(fh, f.Encoding)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return decodedFile{Reader: r, Closer: fh}, nil
}

type decodedFile struct {
	io.Reader
	io.Closer
}

// ReadFile opens f, decodes it and calls fn for every line.
// The file handle is released on every return path. Errors returned by fn
// are passed through unwrapped.
func ReadFile(f File, fn LineFunc) error {
	r, err := Open(f)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	var fnErr error
	err = ForEachLine(r, func(lineNo int, line string) error {
		fnErr = fn(lineNo, line)
		return fnErr
	})
	if err != nil && fnErr == nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}
	return err
}
