// Package connection compiles the bigram connection-cost matrix
// (matrix.def) used to score adjacent tokens.
package connection

import (
	"errors"
	"fmt"
	"math"

	"github.com/leapstack-labs/morphdict/pkg/core"
)

// ErrOutOfRange indicates that an id is outside the declared dimensions.
var ErrOutOfRange = errors.New("connection: id out of range")

// MaxSize is the largest dimension a matrix may declare. Context ids are
// int16, so no id can address a row or column beyond it.
const MaxSize = math.MaxInt16 + 1

// Matrix is a forwardSize × backwardSize grid of int16 costs stored
// row-major in a flat slice. Its dimensions never change.
type Matrix struct {
	forward, backward int
	costs             []int16
	diags             []core.Diagnostic
}

// NewMatrix allocates a zero-filled matrix.
func NewMatrix(forwardSize, backwardSize int) (*Matrix, error) {
	if err := checkSize(forwardSize, backwardSize); err != nil {
		return nil, err
	}
	return &Matrix{
		forward:  forwardSize,
		backward: backwardSize,
		costs:    make([]int16, forwardSize*backwardSize),
	}, nil
}

// FromCosts wraps an existing row-major cost slice, e.g. one read back from
// disk. len(costs) must equal forwardSize*backwardSize.
func FromCosts(forwardSize, backwardSize int, costs []int16) (*Matrix, error) {
	if err := checkSize(forwardSize, backwardSize); err != nil {
		return nil, err
	}
	if len(costs) != forwardSize*backwardSize {
		return nil, fmt.Errorf("%d costs for %d×%d matrix: %w", len(costs), forwardSize, backwardSize, core.ErrFormat)
	}
	return &Matrix{forward: forwardSize, backward: backwardSize, costs: costs}, nil
}

func checkSize(forwardSize, backwardSize int) error {
	if forwardSize <= 0 || backwardSize <= 0 {
		return fmt.Errorf("dimensions %d×%d must be positive: %w", forwardSize, backwardSize, core.ErrFormat)
	}
	if forwardSize > MaxSize || backwardSize > MaxSize {
		return fmt.Errorf("dimensions %d×%d exceed %d: %w", forwardSize, backwardSize, MaxSize, core.ErrFormat)
	}
	return nil
}

// ForwardSize returns the number of forward (right-context) ids.
func (m *Matrix) ForwardSize() int { return m.forward }

// BackwardSize returns the number of backward (left-context) ids.
func (m *Matrix) BackwardSize() int { return m.backward }

func (m *Matrix) index(forwardID, backwardID int) (int, error) {
	if forwardID < 0 || forwardID >= m.forward || backwardID < 0 || backwardID >= m.backward {
		return 0, fmt.Errorf("(%d,%d) in %d×%d: %w", forwardID, backwardID, m.forward, m.backward, ErrOutOfRange)
	}
	return forwardID*m.backward + backwardID, nil
}

// Cost returns the cost of (forwardID, backwardID).
func (m *Matrix) Cost(forwardID, backwardID int) (int16, error) {
	i, err := m.index(forwardID, backwardID)
	if err != nil {
		return 0, err
	}
	return m.costs[i], nil
}

// Set assigns the cost of (forwardID, backwardID).
func (m *Matrix) Set(forwardID, backwardID int, cost int16) error {
	i, err := m.index(forwardID, backwardID)
	if err != nil {
		return err
	}
	m.costs[i] = cost
	return nil
}

// Costs returns the row-major backing slice. The slice aliases the matrix.
func (m *Matrix) Costs() []int16 {
	return m.costs
}

// Diagnostics returns the per-line defects recovered while compiling.
func (m *Matrix) Diagnostics() []core.Diagnostic {
	return m.diags
}
