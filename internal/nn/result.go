package nn

import (
	"fmt"
	"sort"

	"github.com/born-ml/ninja/internal/matrix"
)

// Result is one ranked output unit.
type Result struct {
	Index int
	Score float64
}

// String formats the result as "index:score".
func (r Result) String() string {
	return fmt.Sprintf("%d:%g", r.Index, r.Score)
}

// Sort ranks the entries of an output vector by descending score. Entries
// with equal scores keep their index order. A matrix that is not a vector is
// read in row-major order.
func Sort(output *matrix.Dense) []Result {
	if output == nil {
		return nil
	}
	return SortValues(output.RawData())
}

// SortValues ranks scores by descending value, stable on ties.
func SortValues(scores []float64) []Result {
	results := make([]Result, len(scores))
	for i, s := range scores {
		results[i] = Result{Index: i, Score: s}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Top returns the best-scoring entry of output. ok is false when output is
// nil.
func Top(output *matrix.Dense) (best Result, ok bool) {
	results := Sort(output)
	if len(results) == 0 {
		return Result{}, false
	}
	return results[0], true
}
