package nn

import (
	"fmt"

	"github.com/born-ml/ninja/internal/matrix"
)

// ForwardVectors holds the per-layer pre-activations and activations of one
// forward pass.
//
// Z[0] is unused (nil). A[0] is the bias-prepended input. For 0 < l < L-1,
// Z[l] has units[l] rows and A[l] is act(Z[l]) with the bias prepended. A[L-1]
// is act(Z[L-1]) without bias.
type ForwardVectors struct {
	Z []*matrix.Dense
	A []*matrix.Dense
}

// Output returns the output-layer activation vector.
func (fv *ForwardVectors) Output() *matrix.Dense {
	return fv.A[len(fv.A)-1]
}

// FeedForward runs one forward pass for the input values x (units[0] of
// them, without the bias unit).
func (n *Network) FeedForward(x []float64) (*ForwardVectors, error) {
	if err := n.checkInput("FeedForward", x); err != nil {
		return nil, err
	}

	layers := n.NumLayers()
	fv := &ForwardVectors{
		Z: make([]*matrix.Dense, layers),
		A: make([]*matrix.Dense, layers),
	}
	fv.A[0] = matrix.PrependBiasValues(x)

	for l := 1; l < layers; l++ {
		z, err := matrix.Mul(n.w[l-1], fv.A[l-1])
		if err != nil {
			return nil, fmt.Errorf("nn.FeedForward: layer %d: %w", l, err)
		}
		fv.Z[l] = z
		a := n.act.Apply(z)
		if l < layers-1 {
			a = matrix.PrependBiasValues(a.RawData())
		}
		fv.A[l] = a
	}
	return fv, nil
}

// Apply returns the output activations for input x as a column vector of
// units[L-1] entries.
func (n *Network) Apply(x []float64) (*matrix.Dense, error) {
	fv, err := n.FeedForward(x)
	if err != nil {
		return nil, err
	}
	return fv.Output(), nil
}

func (n *Network) checkInput(op string, x []float64) error {
	if len(x) != n.InputSize() {
		return fmt.Errorf("nn.%s: got %d input values, want %d: %w", op, len(x), n.InputSize(), ErrInputSize)
	}
	return nil
}

func (n *Network) checkTarget(op string, y []float64) error {
	if len(y) != n.OutputSize() {
		return fmt.Errorf("nn.%s: got %d target values, want %d: %w", op, len(y), n.OutputSize(), ErrTargetSize)
	}
	return nil
}
