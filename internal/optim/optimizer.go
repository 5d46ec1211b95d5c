// Package optim implements weight update rules for training networks.
//
// This package provides:
//   - Optimizer interface: Base interface for update rules
//   - SGD: plain (mini-)batch gradient descent
//
// Example usage:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.7})
//
//	for _, batch := range batches {
//	    grads, err := net.ComputeGradient(batch.Inputs(), batch.Targets())
//	    if err != nil {
//	        return err
//	    }
//	    if err := sgd.Step(params, grads); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"errors"
	"fmt"

	"github.com/born-ml/ninja/internal/matrix"
)

// ErrParamMismatch indicates parameters and gradients that do not pair up.
var ErrParamMismatch = errors.New("optim: parameter/gradient mismatch")

// Optimizer is the base interface for update rules.
//
// Optimizers update parameters in place from a fully computed gradient.
// Step either applies the update to every parameter or to none of them.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// params[i] is updated from grads[i]; both slices must have the same
	// length and pairwise equal shapes.
	Step(params, grads []*matrix.Dense) error

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// checkPairs validates params against grads before any mutation happens.
func checkPairs(params, grads []*matrix.Dense) error {
	if len(params) != len(grads) {
		return fmt.Errorf("optim: %d parameters, %d gradients: %w", len(params), len(grads), ErrParamMismatch)
	}
	for i := range params {
		if params[i] == nil || grads[i] == nil {
			return fmt.Errorf("optim: pair %d: %w", i, matrix.ErrNilMatrix)
		}
		if !params[i].Shape().Equal(grads[i].Shape()) {
			return fmt.Errorf("optim: pair %d: parameter %v, gradient %v: %w",
				i, params[i].Shape(), grads[i].Shape(), ErrParamMismatch)
		}
	}
	return nil
}
