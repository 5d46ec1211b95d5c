package matrix

import "fmt"

// NewColVector creates an n×1 column vector holding a copy of values.
func NewColVector(values ...float64) (*Dense, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("matrix.NewColVector: empty vector: %w", ErrBadShape)
	}
	return NewFromValues(len(values), 1, values...)
}

// requireColVector fails unless m is non-nil with exactly one column.
func requireColVector(op string, m *Dense) error {
	if m == nil {
		return fmt.Errorf("%s: %w", op, ErrNilMatrix)
	}
	if m.c != 1 {
		return fmt.Errorf("%s: got %v: %w", op, m.Shape(), ErrNotColumnVector)
	}
	return nil
}

// PrependBias returns a new column vector of length n+1 with 1.0 at row 0
// followed by the n values of v.
func PrependBias(v *Dense) (*Dense, error) {
	if err := requireColVector("matrix.PrependBias", v); err != nil {
		return nil, err
	}
	out := newUnchecked(v.r+1, 1)
	out.data[0] = 1.0
	copy(out.data[1:], v.data)
	return out, nil
}

// PrependBiasValues is PrependBias for a raw slice.
func PrependBiasValues(values []float64) *Dense {
	out := newUnchecked(len(values)+1, 1)
	out.data[0] = 1.0
	copy(out.data[1:], values)
	return out
}

// StripBias returns a new column vector without row 0 of v.
func StripBias(v *Dense) (*Dense, error) {
	if err := requireColVector("matrix.StripBias", v); err != nil {
		return nil, err
	}
	if v.r < 2 {
		return nil, fmt.Errorf("matrix.StripBias: %v leaves no rows: %w", v.Shape(), ErrBadShape)
	}
	out := newUnchecked(v.r-1, 1)
	copy(out.data, v.data[1:])
	return out, nil
}

// ExtractVector copies row index (isRow) as a 1×cols matrix, or column
// index as a rows×1 matrix.
func ExtractVector(m *Dense, isRow bool, index int) (*Dense, error) {
	if err := checkNil("matrix.ExtractVector", m); err != nil {
		return nil, err
	}
	if isRow {
		return ExtractSubvector(m, true, index, 0, m.c)
	}
	return ExtractSubvector(m, false, index, 0, m.r)
}

// ExtractSubvector copies length contiguous elements of row (isRow) or
// column index, starting at offset. Rows come back as 1×length, columns as
// length×1.
func ExtractSubvector(m *Dense, isRow bool, index, offset, length int) (*Dense, error) {
	if err := checkNil("matrix.ExtractSubvector", m); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("matrix.ExtractSubvector: length %d: %w", length, ErrBadShape)
	}
	if isRow {
		if index < 0 || index >= m.r || offset < 0 || offset+length > m.c {
			return nil, indexErrorf("ExtractSubvector", index, offset+length-1, m.Shape())
		}
		out := newUnchecked(1, length)
		start := index*m.c + offset
		copy(out.data, m.data[start:start+length])
		return out, nil
	}
	if index < 0 || index >= m.c || offset < 0 || offset+length > m.r {
		return nil, indexErrorf("ExtractSubvector", offset+length-1, index, m.Shape())
	}
	out := newUnchecked(length, 1)
	for k := 0; k < length; k++ {
		out.data[k] = m.data[(offset+k)*m.c+index]
	}
	return out, nil
}
