package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	// ErrBadShape is returned for non-positive dimensions or a value count
	// that does not equal rows*cols.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNotColumnVector is returned when a single-column matrix is required.
	ErrNotColumnVector = errors.New("matrix: not a column vector")

	// ErrNilMatrix indicates a nil *Dense operand.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

// indexErrorf wraps ErrOutOfRange with the method and offending index.
func indexErrorf(method string, row, col int, s Shape) error {
	return fmt.Errorf("Dense.%s(%d,%d) on %v: %w", method, row, col, s, ErrOutOfRange)
}

// mismatchErrorf wraps ErrDimensionMismatch with both operand shapes.
func mismatchErrorf(op string, a, b Shape) error {
	return fmt.Errorf("%s: %v vs %v: %w", op, a, b, ErrDimensionMismatch)
}
