package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// EqualApprox reports whether a and b have the same shape and every pair of
// elements differs by at most tol.
//
// NaN compares equal to NaN, and infinities compare equal to infinities of
// the same sign. An infinity never equals a finite value.
func EqualApprox(a, b *Dense, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	for i, x := range a.data {
		if !elementEqual(x, b.data[i], tol) {
			return false
		}
	}
	return true
}

func elementEqual(x, y, tol float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.IsNaN(x) && math.IsNaN(y)
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return x == y
	}
	return scalar.EqualWithinAbs(x, y, tol)
}
