// Package matrix implements the dense float64 matrices used by the network
// engine.
//
// A Dense is a fixed-size rows×cols buffer stored row-major in one contiguous
// slice. Column vectors are Dense values with a single column.
//
// Two disciplines coexist:
//   - Value-returning operations (Add, Sub, Mul, Transpose, ...) allocate a
//     new result and never alias their operands.
//   - In-place operations (AddInPlace, SubInPlace, ScaleInPlace,
//     AddOuterInPlace) mutate their first argument and exist for the gradient
//     accumulation and weight update hot paths.
//
// Every operation validates shapes and indices and returns an error wrapping
// one of the package sentinels; nothing is silently truncated, padded or
// clamped.
//
// Example:
//
//	w, _ := matrix.NewFromValues(2, 3,
//	    1, 2, 3,
//	    4, 5, 6,
//	)
//	x, _ := matrix.NewColVector(1, 1, 1)
//	y, err := matrix.Mul(w, x) // [6, 15]
package matrix
