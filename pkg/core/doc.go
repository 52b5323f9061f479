// Package core defines the shared language of the morphdict system.
//
// This package contains:
//   - The canonical lexicon record every source dialect is translated into
//   - The dialect tag used to select a schema formatter
//   - Character category definitions
//   - Diagnostics and sentinel errors shared by the compilers
//   - Build catalog types and the Store interface
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
