// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides weight update rules for training networks.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent, param -= lr * grad
//   - Optimizer interface for custom update rules
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ninja/nn"
//	    "github.com/born-ml/ninja/optim"
//	)
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.7})
//	for _, b := range batches {
//	    grads, err := net.ComputeGradient(b.X, b.Y)
//	    if err != nil {
//	        return err
//	    }
//	    if err := net.Update(sgd, grads); err != nil {
//	        return err
//	    }
//	}
//
// Step validates every parameter/gradient pair before changing anything, so
// a failed update leaves the network as it was.
package optim
