// Package testutil provides helpers shared by package tests: a logger that
// writes through t.Log and fixture file helpers.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// WriteFile writes lines (joined with "\n") to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()
	return writeBytes(t, dir, name, []byte(joinLines(lines)))
}

// WriteEncodedFile writes lines to dir/name encoded with enc.
func WriteEncodedFile(t testing.TB, dir, name string, enc encoding.Encoding, lines ...string) string {
	t.Helper()
	b, _, err := transform.Bytes(enc.NewEncoder(), []byte(joinLines(lines)))
	if err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return writeBytes(t, dir, name, b)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func writeBytes(t testing.TB, dir, name string, b []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
