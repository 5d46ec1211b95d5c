package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Loss returns the mean cross-entropy of the batch:
//
//	-(1/n) Σ_i Σ_k [y_ik ln a_ik + (1-y_ik) ln(1-a_ik)]
//
// where a_i is the network output for x[i]. delta[L-1] = a - y is the
// gradient of this objective for sigmoid outputs. Terms whose weight y or
// 1-y is zero are skipped, so a saturated but correct output costs 0.
func (n *Network) Loss(x, y [][]float64) (float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return 0, fmt.Errorf("nn.Loss: %d inputs, %d targets: %w", len(x), len(y), ErrBatchSize)
	}
	perExample := make([]float64, len(x))
	for i := range x {
		if err := n.checkTarget("Loss", y[i]); err != nil {
			return 0, fmt.Errorf("example %d: %w", i, err)
		}
		out, err := n.Apply(x[i])
		if err != nil {
			return 0, fmt.Errorf("example %d: %w", i, err)
		}
		perExample[i] = crossEntropy(out.RawData(), y[i])
	}
	return floats.Sum(perExample) / float64(len(x)), nil
}

func crossEntropy(a, y []float64) float64 {
	terms := make([]float64, 0, 2*len(a))
	for k, t := range y {
		if t != 0 {
			terms = append(terms, t*math.Log(a[k]))
		}
		if t != 1 {
			terms = append(terms, (1-t)*math.Log(1-a[k]))
		}
	}
	return -floats.Sum(terms)
}
