// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a fully connected sigmoid feed-forward network with
// bias units, trained by (mini-)batch gradient descent.
//
// # Overview
//
// This package contains:
//   - Network: construction, forward propagation, backpropagation
//   - Training: ComputeGradient, TrainBatch, Loss
//   - Initialization: RandomInitialize with an explicit *rand.Rand
//   - Ranking: Sort, Top
//   - Model text format: ReadModel, WriteModel, LoadModel, SaveModel
//
// # Basic Usage
//
//	import "github.com/born-ml/ninja/nn"
//
//	func main() {
//	    net, err := nn.New([]int{2, 3, 1}, nn.WithSeed(1))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
//	    y := [][]float64{{1}, {1}, {1}, {0}}
//	    for i := 0; i < 10000; i++ {
//	        if err := net.TrainBatch(x, y, 0.5); err != nil {
//	            log.Fatal(err)
//	        }
//	    }
//
//	    out, _ := net.Apply([]float64{1, 1})
//	    best, _ := nn.Top(out)
//	    fmt.Println(best.Index, best.Score)
//	}
//
// # Layout
//
// Layer l feeds layer l+1 through a weight matrix of shape
// units[l+1]×(units[l]+1). Column 0 holds the bias weights.
//
// # Model format
//
//	num_layers=3
//	layer_sizes=2 3 1
//	w
//
//	<3 rows of 3 numbers>
//
//	<1 row of 4 numbers>
package nn
