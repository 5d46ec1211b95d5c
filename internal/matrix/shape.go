package matrix

import "fmt"

// Shape holds the dimensions of a matrix.
type Shape struct {
	Rows, Cols int
}

// NumElements returns Rows*Cols.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks that both dimensions are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("shape %v (dimensions must be > 0): %w", s, ErrBadShape)
	}
	return nil
}

// Equal reports whether two shapes are identical.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// IsColVector reports whether the shape has exactly one column.
func (s Shape) IsColVector() bool {
	return s.Cols == 1
}

// String renders the shape as "RxC".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}
