// Package nn implements a fully connected feed-forward network with bias
// units: forward propagation, backpropagation, gradient computation and
// gradient descent updates.
//
// Layer l feeds layer l+1 through weight matrix w[l] of shape
// units[l+1]×(units[l]+1); column 0 multiplies the implicit bias input 1.0.
//
// Example:
//
//	net, err := nn.New([]int{784, 30, 10})
//	if err != nil {
//	    return err
//	}
//	for epoch := 0; epoch < epochs; epoch++ {
//	    for _, b := range batches {
//	        if err := net.TrainBatch(b.X, b.Y, 0.7); err != nil {
//	            return err
//	        }
//	    }
//	}
//	out, err := net.Apply(x)
//	best, _ := nn.Top(out)
package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/born-ml/ninja/internal/activation"
	"github.com/born-ml/ninja/internal/matrix"
	"github.com/born-ml/ninja/internal/parallel"
)

// Network is a fully connected feed-forward network.
//
// Weights are mutated only by Step / TrainBatch / RandomInitialize. A
// Network is not safe for concurrent mutation; concurrent read-only calls
// (FeedForward, Apply, Backprop, ComputeGradient) are safe.
type Network struct {
	w        []*matrix.Dense
	sizes    []int
	act      activation.Kind
	parallel parallel.Config
}

// New creates a network with the given layer sizes (input and output
// included, bias units excluded) and random weights.
//
// Weights come from the generator given by WithRand / WithSeed, or from
// rand.NewSource(DefaultSeed), so equal architectures yield equal weights.
func New(layerSizes []int, opts ...Option) (*Network, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateOptions(o); err != nil {
		return nil, err
	}
	if len(layerSizes) < 2 {
		return nil, fmt.Errorf("nn.New: need at least 2 layers, got %d: %w", len(layerSizes), ErrArchitecture)
	}

	sizes := make([]int, len(layerSizes))
	copy(sizes, layerSizes)

	w := make([]*matrix.Dense, len(sizes)-1)
	for l := range w {
		m, err := matrix.New(sizes[l+1], sizes[l]+1)
		if err != nil {
			return nil, fmt.Errorf("nn.New: layer %d sizes %v: %w (%w)", l, sizes, ErrArchitecture, err)
		}
		w[l] = m
	}

	n := &Network{w: w, sizes: sizes, act: o.act, parallel: o.parallel}
	rng := o.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed)) //nolint:gosec // Deterministic weight init, not security-critical.
	}
	n.RandomInitialize(rng)
	return n, nil
}

// FromWeights creates a network from existing weight matrices. The number
// of matrices defines the depth: L layers need L-1 matrices. The matrices
// are copied.
//
// WithRand / WithSeed are ignored; the weights are used as given.
func FromWeights(weights []*matrix.Dense, opts ...Option) (*Network, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateOptions(o); err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("nn.FromWeights: no weight matrices: %w", ErrArchitecture)
	}
	for l, m := range weights {
		if m == nil {
			return nil, fmt.Errorf("nn.FromWeights: weight %d is nil: %w", l, ErrArchitecture)
		}
		if m.Cols() < 2 {
			return nil, fmt.Errorf("nn.FromWeights: weight %d is %v, needs a bias column and at least one input: %w",
				l, m.Shape(), ErrArchitecture)
		}
	}

	sizes := make([]int, len(weights)+1)
	sizes[0] = weights[0].Cols() - 1
	for l := 1; l < len(sizes); l++ {
		sizes[l] = weights[l-1].Rows()
	}
	w := make([]*matrix.Dense, len(weights))
	for l, m := range weights {
		if m.Rows() != sizes[l+1] || m.Cols() != sizes[l]+1 {
			return nil, fmt.Errorf("nn.FromWeights: weight %d is %v, want %dx%d: %w",
				l, m.Shape(), sizes[l+1], sizes[l]+1, ErrArchitecture)
		}
		w[l] = m.Clone()
	}

	return &Network{w: w, sizes: sizes, act: o.act, parallel: o.parallel}, nil
}

func validateOptions(o options) error {
	if !o.act.Valid() {
		return fmt.Errorf("nn: activation %v: %w", o.act, activation.ErrUnknownKind)
	}
	return nil
}

// NumLayers returns the number of layers including input and output.
func (n *Network) NumLayers() int {
	return len(n.w) + 1
}

// LayerSizes returns the number of non-bias units of every layer.
func (n *Network) LayerSizes() []int {
	out := make([]int, len(n.sizes))
	copy(out, n.sizes)
	return out
}

// NumUnits returns the number of non-bias units in layer (0 is the input).
func (n *Network) NumUnits(layer int) (int, error) {
	if layer < 0 || layer >= len(n.sizes) {
		return 0, fmt.Errorf("nn.NumUnits: layer %d of %d: %w", layer, len(n.sizes), matrix.ErrOutOfRange)
	}
	return n.sizes[layer], nil
}

// InputSize returns units[0].
func (n *Network) InputSize() int { return n.sizes[0] }

// OutputSize returns units[L-1].
func (n *Network) OutputSize() int { return n.sizes[len(n.sizes)-1] }

// Weight returns a copy of weight matrix l (feeding layer l+1).
func (n *Network) Weight(l int) (*matrix.Dense, error) {
	if l < 0 || l >= len(n.w) {
		return nil, fmt.Errorf("nn.Weight: matrix %d of %d: %w", l, len(n.w), matrix.ErrOutOfRange)
	}
	return n.w[l].Clone(), nil
}

// Weights returns copies of all weight matrices.
func (n *Network) Weights() []*matrix.Dense {
	out := make([]*matrix.Dense, len(n.w))
	for l, m := range n.w {
		out[l] = m.Clone()
	}
	return out
}

// Activation returns the activation kind used by hidden and output layers.
func (n *Network) Activation() activation.Kind { return n.act }

// SetParallel replaces the fan-out configuration used by ComputeGradient.
func (n *Network) SetParallel(cfg parallel.Config) { n.parallel = cfg }

// String renders every weight matrix.
func (n *Network) String() string {
	var sb strings.Builder
	for l, m := range n.w {
		fmt.Fprintf(&sb, "w[%d] %v\n", l, m.Shape())
		sb.WriteString(m.String())
	}
	return sb.String()
}
