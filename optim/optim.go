// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import "github.com/born-ml/ninja/internal/optim"

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// SGD represents the gradient descent optimizer.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// ErrParamMismatch indicates parameters and gradients that do not pair up.
var ErrParamMismatch = optim.ErrParamMismatch

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.7})
//	grads, err := net.ComputeGradient(x, y)
//	if err != nil {
//	    return err
//	}
//	if err := net.Update(sgd, grads); err != nil {
//	    return err
//	}
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
