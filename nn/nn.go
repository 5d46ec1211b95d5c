// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"
	"math/rand"

	"github.com/born-ml/ninja/internal/activation"
	"github.com/born-ml/ninja/internal/matrix"
	"github.com/born-ml/ninja/internal/nn"
	"github.com/born-ml/ninja/internal/parallel"
	"github.com/born-ml/ninja/internal/serialization"
)

// Network is a fully connected feed-forward network.
type Network = nn.Network

// ForwardVectors holds the per-layer values of one forward pass.
type ForwardVectors = nn.ForwardVectors

// Result is one ranked output unit.
type Result = nn.Result

// Option configures a Network at construction time.
type Option = nn.Option

// Matrix is a dense row-major float64 matrix.
type Matrix = matrix.Dense

// Activation selects the layer activation function.
type Activation = activation.Kind

// Activation functions.
const (
	Sigmoid  = activation.Sigmoid
	Identity = activation.Identity
)

// ParallelConfig controls per-example fan-out in ComputeGradient.
type ParallelConfig = parallel.Config

// DefaultSeed seeds the weight initializer when no generator is supplied.
const DefaultSeed = nn.DefaultSeed

// Errors.
var (
	ErrArchitecture   = nn.ErrArchitecture
	ErrInputSize      = nn.ErrInputSize
	ErrTargetSize     = nn.ErrTargetSize
	ErrBatchSize      = nn.ErrBatchSize
	ErrMalformedModel = serialization.ErrMalformedModel
)

// New creates a network with the given layer sizes and random weights.
//
// Example:
//
//	net, err := nn.New([]int{784, 30, 10}, nn.WithSeed(42))
func New(layerSizes []int, opts ...Option) (*Network, error) {
	return nn.New(layerSizes, opts...)
}

// FromWeights creates a network from existing weight matrices.
func FromWeights(weights []*Matrix, opts ...Option) (*Network, error) {
	return nn.FromWeights(weights, opts...)
}

// NewMatrix creates a rows×cols matrix from row-major values.
func NewMatrix(rows, cols int, values ...float64) (*Matrix, error) {
	return matrix.NewFromValues(rows, cols, values...)
}

// WithSeed initializes random weights from rand.NewSource(seed).
func WithSeed(seed int64) Option { return nn.WithSeed(seed) }

// WithRand initializes random weights from rng.
func WithRand(rng *rand.Rand) Option { return nn.WithRand(rng) }

// WithActivation selects the activation of hidden and output layers.
func WithActivation(a Activation) Option { return nn.WithActivation(a) }

// WithParallel enables per-example fan-out in ComputeGradient.
func WithParallel(cfg ParallelConfig) Option { return nn.WithParallel(cfg) }

// Sort ranks the entries of an output vector by descending score.
func Sort(output *Matrix) []Result { return nn.Sort(output) }

// Top returns the best-scoring entry of output.
func Top(output *Matrix) (Result, bool) { return nn.Top(output) }

// ReadModel parses a network in the text model format.
func ReadModel(r io.Reader, opts ...Option) (*Network, error) {
	return serialization.ReadModel(r, opts...)
}

// WriteModel writes net in the text model format.
func WriteModel(w io.Writer, net *Network) error {
	return serialization.WriteModel(w, net)
}

// LoadModel reads a network from a model file.
func LoadModel(path string, opts ...Option) (*Network, error) {
	return serialization.LoadFile(path, opts...)
}

// SaveModel writes net to a model file.
func SaveModel(path string, net *Network) error {
	return serialization.SaveFile(path, net)
}
