// Package train drives a network over example files: the epoch/batch
// training loop, batch prediction and accuracy evaluation.
package train

import (
	"errors"
	"fmt"

	"github.com/born-ml/ninja/internal/parallel"
)

// ErrConfig indicates an invalid training configuration.
var ErrConfig = errors.New("train: invalid config")

// Config holds the training hyperparameters.
type Config struct {
	BatchSize    int             // Examples per gradient step; <= 0 means the whole file (default: 10)
	Epochs       int             // Passes over the examples (default: 5)
	LearningRate float64         // Gradient descent step size (default: 0.7)
	Parallel     parallel.Config // Per-example fan-out inside each batch
}

// DefaultConfig returns the defaults used by the command line.
func DefaultConfig() Config {
	return Config{
		BatchSize:    10,
		Epochs:       5,
		LearningRate: 0.7,
		Parallel:     parallel.Sequential(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Epochs < 0 {
		return fmt.Errorf("epochs %d must not be negative: %w", c.Epochs, ErrConfig)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate %g must be positive: %w", c.LearningRate, ErrConfig)
	}
	if c.Parallel.NumWorkers < 0 {
		return fmt.Errorf("workers %d must not be negative: %w", c.Parallel.NumWorkers, ErrConfig)
	}
	return nil
}
