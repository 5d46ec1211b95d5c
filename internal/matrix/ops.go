package matrix

import "fmt"

func checkNil(op string, ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return fmt.Errorf("%s: %w", op, ErrNilMatrix)
		}
	}
	return nil
}

func checkSameShape(op string, a, b *Dense) error {
	if err := checkNil(op, a, b); err != nil {
		return err
	}
	if a.r != b.r || a.c != b.c {
		return mismatchErrorf(op, a.Shape(), b.Shape())
	}
	return nil
}

// Add returns a + b.
func Add(a, b *Dense) (*Dense, error) {
	if err := checkSameShape("matrix.Add", a, b); err != nil {
		return nil, err
	}
	out := newUnchecked(a.r, a.c)
	for i, v := range a.data {
		out.data[i] = v + b.data[i]
	}
	return out, nil
}

// Sub returns a - b.
func Sub(a, b *Dense) (*Dense, error) {
	if err := checkSameShape("matrix.Sub", a, b); err != nil {
		return nil, err
	}
	out := newUnchecked(a.r, a.c)
	for i, v := range a.data {
		out.data[i] = v - b.data[i]
	}
	return out, nil
}

// MulElem returns the Hadamard (element-wise) product a ⊙ b.
func MulElem(a, b *Dense) (*Dense, error) {
	if err := checkSameShape("matrix.MulElem", a, b); err != nil {
		return nil, err
	}
	out := newUnchecked(a.r, a.c)
	for i, v := range a.data {
		out.data[i] = v * b.data[i]
	}
	return out, nil
}

// Scale returns alpha * m.
func Scale(m *Dense, alpha float64) *Dense {
	out := newUnchecked(m.r, m.c)
	for i, v := range m.data {
		out.data[i] = v * alpha
	}
	return out
}

// Divide returns m / alpha. Division by zero follows IEEE 754.
func Divide(m *Dense, alpha float64) *Dense {
	out := newUnchecked(m.r, m.c)
	for i, v := range m.data {
		out.data[i] = v / alpha
	}
	return out
}

// Apply returns a new matrix with f applied to every element.
func Apply(m *Dense, f func(float64) float64) *Dense {
	out := newUnchecked(m.r, m.c)
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

// Transpose returns mᵀ.
func Transpose(m *Dense) *Dense {
	out := newUnchecked(m.c, m.r)
	for i := 0; i < m.r; i++ {
		row := m.data[i*m.c : (i+1)*m.c]
		for j, v := range row {
			out.data[j*m.r+i] = v
		}
	}
	return out
}

// Mul returns the matrix product a·b.
//
// Requires a.Cols() == b.Rows(); the result is a.Rows()×b.Cols().
func Mul(a, b *Dense) (*Dense, error) {
	if err := checkNil("matrix.Mul", a, b); err != nil {
		return nil, err
	}
	if a.c != b.r {
		return nil, mismatchErrorf("matrix.Mul", a.Shape(), b.Shape())
	}
	out := newUnchecked(a.r, b.c)
	// i-k-j order walks both operands row-major.
	for i := 0; i < a.r; i++ {
		dst := out.data[i*b.c : (i+1)*b.c]
		for k := 0; k < a.c; k++ {
			aik := a.data[i*a.c+k]
			src := b.data[k*b.c : (k+1)*b.c]
			for j, v := range src {
				dst[j] += aik * v
			}
		}
	}
	return out, nil
}

// MulTransA returns aᵀ·b without materializing aᵀ.
func MulTransA(a, b *Dense) (*Dense, error) {
	if err := checkNil("matrix.MulTransA", a, b); err != nil {
		return nil, err
	}
	if a.r != b.r {
		return nil, mismatchErrorf("matrix.MulTransA", Shape{Rows: a.c, Cols: a.r}, b.Shape())
	}
	out := newUnchecked(a.c, b.c)
	for k := 0; k < a.r; k++ {
		arow := a.data[k*a.c : (k+1)*a.c]
		brow := b.data[k*b.c : (k+1)*b.c]
		for i, aki := range arow {
			dst := out.data[i*b.c : (i+1)*b.c]
			for j, v := range brow {
				dst[j] += aki * v
			}
		}
	}
	return out, nil
}

// AddInPlace performs dst += src.
func AddInPlace(dst, src *Dense) error {
	if err := checkSameShape("matrix.AddInPlace", dst, src); err != nil {
		return err
	}
	for i, v := range src.data {
		dst.data[i] += v
	}
	return nil
}

// SubInPlace performs dst -= src.
func SubInPlace(dst, src *Dense) error {
	if err := checkSameShape("matrix.SubInPlace", dst, src); err != nil {
		return err
	}
	for i, v := range src.data {
		dst.data[i] -= v
	}
	return nil
}

// ScaleInPlace performs dst *= alpha.
func ScaleInPlace(dst *Dense, alpha float64) {
	for i := range dst.data {
		dst.data[i] *= alpha
	}
}

// AddOuterInPlace performs dst += u·vᵀ for column vectors u and v.
//
// This is the gradient accumulation step; it allocates nothing.
func AddOuterInPlace(dst, u, v *Dense) error {
	if dst == nil {
		return fmt.Errorf("matrix.AddOuterInPlace: %w", ErrNilMatrix)
	}
	return AddOuterRowsInPlace(dst, u, v, 0, dst.r)
}

// AddOuterRowsInPlace is AddOuterInPlace restricted to rows [r0, r1) of dst.
// Disjoint row ranges can be accumulated concurrently.
func AddOuterRowsInPlace(dst, u, v *Dense, r0, r1 int) error {
	if err := checkNil("matrix.AddOuterInPlace", dst, u, v); err != nil {
		return err
	}
	if u.c != 1 || v.c != 1 {
		return fmt.Errorf("matrix.AddOuterInPlace: %v, %v: %w", u.Shape(), v.Shape(), ErrNotColumnVector)
	}
	if dst.r != u.r || dst.c != v.r {
		return mismatchErrorf("matrix.AddOuterInPlace", dst.Shape(), Shape{Rows: u.r, Cols: v.r})
	}
	if r0 < 0 || r1 > dst.r || r0 > r1 {
		return indexErrorf("AddOuterRowsInPlace", r0, r1, dst.Shape())
	}
	for i := r0; i < r1; i++ {
		ui := u.data[i]
		row := dst.data[i*dst.c : (i+1)*dst.c]
		for j, vj := range v.data {
			row[j] += ui * vj
		}
	}
	return nil
}
