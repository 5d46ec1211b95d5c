// Package activation provides the element-wise activation functions used by
// the network: Sigmoid for trained networks and Identity for checking
// linear composition without squashing.
package activation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/ninja/internal/matrix"
)

// Kind selects an activation function. It is a closed set; the zero value
// is Sigmoid.
type Kind int

const (
	// Sigmoid applies σ(x) = 1 / (1 + exp(-x)).
	Sigmoid Kind = iota
	// Identity applies f(x) = x.
	Identity
)

// ErrUnknownKind is returned by Parse for unrecognized names.
var ErrUnknownKind = errors.New("activation: unknown kind")

// Value evaluates the activation at x.
func (k Kind) Value(x float64) float64 {
	switch k {
	case Identity:
		return x
	default:
		return sigmoid(x)
	}
}

// Derivative evaluates the activation's derivative at x.
func (k Kind) Derivative(x float64) float64 {
	switch k {
	case Identity:
		return 1
	default:
		s := sigmoid(x)
		return s * (1 - s)
	}
}

// Apply returns a new matrix with the activation applied element-wise.
func (k Kind) Apply(m *matrix.Dense) *matrix.Dense {
	switch k {
	case Identity:
		return m.Clone()
	default:
		return matrix.Apply(m, sigmoid)
	}
}

// ApplyDerivative returns a new matrix with the derivative applied
// element-wise.
func (k Kind) ApplyDerivative(m *matrix.Dense) *matrix.Dense {
	switch k {
	case Identity:
		return matrix.Apply(m, func(float64) float64 { return 1 })
	default:
		return matrix.Apply(m, sigmoidPrime)
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k == Sigmoid || k == Identity
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Sigmoid:
		return "sigmoid"
	case Identity:
		return "identity"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Parse maps a name (case-insensitive) to a Kind.
func Parse(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sigmoid":
		return Sigmoid, nil
	case "identity", "linear":
		return Identity, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1 + math.Exp(-x))
}

func sigmoidPrime(x float64) float64 {
	s := sigmoid(x)
	return s * (1.0 - s)
}
