package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Dense is a row-major matrix of float64 values.
//
// Invariant: len(data) == r*c, r > 0, c > 0.
type Dense struct {
	r, c int
	data []float64
}

// New creates a rows×cols matrix of zeros.
func New(rows, cols int) (*Dense, error) {
	s := Shape{Rows: rows, Cols: cols}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("matrix.New: %w", err)
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFromValues creates a rows×cols matrix from values given in row-major
// order. The values are copied.
//
// Example:
//
//	m, _ := matrix.NewFromValues(2, 2,
//	    1, 2,
//	    3, 4,
//	)
func NewFromValues(rows, cols int, values ...float64) (*Dense, error) {
	s := Shape{Rows: rows, Cols: cols}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("matrix.NewFromValues: %w", err)
	}
	if len(values) != s.NumElements() {
		return nil, fmt.Errorf("matrix.NewFromValues: %v needs %d values, got %d: %w",
			s, s.NumElements(), len(values), ErrBadShape)
	}
	data := make([]float64, len(values))
	copy(data, values)
	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewFromRows creates a matrix from a slice of equally sized rows.
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("matrix.NewFromRows: no rows: %w", ErrBadShape)
	}
	cols := len(rows[0])
	m, err := New(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix.NewFromRows: row %d has %d values, want %d: %w",
				i, len(row), cols, ErrBadShape)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// newUnchecked allocates without validation; callers guarantee r, c > 0.
func newUnchecked(r, c int) *Dense {
	return &Dense{r: r, c: c, data: make([]float64, r*c)}
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns the matrix dimensions.
func (m *Dense) Shape() Shape { return Shape{Rows: m.r, Cols: m.c} }

// Len returns the number of stored elements.
func (m *Dense) Len() int { return len(m.data) }

// At returns the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, indexErrorf("At", row, col, m.Shape())
	}
	return m.data[row*m.c+col], nil
}

// Set assigns v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return indexErrorf("Set", row, col, m.Shape())
	}
	m.data[row*m.c+col] = v
	return nil
}

// Data returns a copy of the row-major backing values.
func (m *Dense) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// RawData exposes the backing slice without copying. Writes through it
// mutate the matrix.
func (m *Dense) RawData() []float64 {
	return m.data
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, indexErrorf("Row", i, 0, m.Shape())
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])
	return out, nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Dense{r: m.r, c: m.c, data: data}
}

// Zero sets every element to 0.
func (m *Dense) Zero() {
	clear(m.data)
}

// String renders one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(m.data[i*m.c+j], 'g', -1, 64))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
