// SPDX-License-Identifier: MIT
package dataset

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
var ErrInvalidDimensions = errors.New("dataset: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
var ErrIndexOutOfBounds = errors.New("dataset: index out of bounds")

// ErrRaggedRows indicates that FromRows received rows of differing lengths.
var ErrRaggedRows = errors.New("dataset: rows have unequal lengths")

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 covariate values.
// r is rows (observations), c is columns (features), and data holds
// r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Returns ErrInvalidDimensions when rows or cols is non-positive.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows builds a Dense matrix from a slice of equally sized rows.
// Returns ErrInvalidDimensions on empty input and ErrRaggedRows when row
// lengths differ.
// Complexity: O(r*c).
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	m := &Dense{r: len(rows), c: c, data: make([]float64, len(rows)*c)}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("dataset: row %d: %w", i, ErrRaggedRows)
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Rows returns the number of rows (observations). Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns (features). Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrIndexOutOfBounds.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Value returns the element at (row, col) without an error return.
// Hot-path accessor for the tree filter loop; indices must be in range
// (the caller owns the bounds, a violation panics via slice indexing).
// Complexity: O(1).
func (m *Dense) Value(row, col int) float64 {
	return m.data[row*m.c+col]
}

// Column copies column col into a fresh slice of length Rows().
// Complexity: O(r).
func (m *Dense) Column(col int) ([]float64, error) {
	if col < 0 || col >= m.c {
		return nil, denseErrorf("Column", 0, col, ErrIndexOutOfBounds)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+col]
	}

	return out, nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}
