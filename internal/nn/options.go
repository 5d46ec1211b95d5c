package nn

import (
	"math/rand"

	"github.com/born-ml/ninja/internal/activation"
	"github.com/born-ml/ninja/internal/parallel"
)

// DefaultSeed seeds the weight initializer when no generator is supplied.
const DefaultSeed int64 = 8723643324

// Option configures a Network at construction time.
type Option func(*options)

type options struct {
	rng      *rand.Rand
	act      activation.Kind
	parallel parallel.Config
}

func defaultOptions() options {
	return options{
		act:      activation.Sigmoid,
		parallel: parallel.Sequential(),
	}
}

// WithSeed initializes random weights from rand.NewSource(seed).
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // Deterministic weight init, not security-critical.
	}
}

// WithRand initializes random weights from rng. The generator is consumed
// in row-major order, layer by layer.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithActivation selects the activation applied to hidden and output layers.
func WithActivation(k activation.Kind) Option {
	return func(o *options) {
		o.act = k
	}
}

// WithParallel enables fan-out of per-example passes in ComputeGradient.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.parallel = cfg
	}
}
