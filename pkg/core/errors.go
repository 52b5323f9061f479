package core

import (
	"errors"
	"io/fs"
)

// Sentinel errors shared by the compilers. Callers match them with errors.Is.
var (
	// ErrFormat is returned when a source violates a structural precondition:
	// a malformed header, a non-numeric cost slot, a bad character definition.
	ErrFormat = errors.New("morphdict: malformed source")

	// ErrFieldCount is returned when a raw record has fewer fields than its
	// dialect requires. It is a build-time defect and is never recovered.
	ErrFieldCount = errors.New("morphdict: field count out of range")

	// ErrUnknownDialect is returned for an unrecognized dialect name.
	ErrUnknownDialect = errors.New("morphdict: unknown dialect")

	// ErrRecordNotFound is returned when an id does not address a record.
	ErrRecordNotFound = errors.New("morphdict: record not found")
)

// ErrorCode is a small error taxonomy used in the build catalog.
type ErrorCode string

// Error codes recorded for failed builds.
const (
	CodeUnknown ErrorCode = "unknown"
	CodeFormat  ErrorCode = "format"
	CodeIO      ErrorCode = "io"
	CodeConfig  ErrorCode = "config"
)

// Classify maps an error to its ErrorCode.
func Classify(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, ErrFormat) || errors.Is(err, ErrFieldCount) {
		return CodeFormat
	}
	if errors.Is(err, ErrUnknownDialect) {
		return CodeConfig
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}
