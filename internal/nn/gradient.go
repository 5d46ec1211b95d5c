package nn

import (
	"fmt"

	"github.com/born-ml/ninja/internal/matrix"
	"github.com/born-ml/ninja/internal/optim"
	"github.com/born-ml/ninja/internal/parallel"
)

// gradientWindow bounds how many per-example passes are held at once when
// ComputeGradient fans out.
const gradientWindow = 256

// ComputeGradient returns the mean gradient of the batch (x[i], y[i]) for
// every weight matrix:
//
//	gradient[l] = (1/n) Σ_i delta_i[l+1] · A_i[l]ᵀ
//
// Every example is validated before any pass runs. With parallelism enabled
// the per-example passes run concurrently, and the contributions are still
// summed in example order, so the result is bit-identical to the sequential
// one.
func (n *Network) ComputeGradient(x, y [][]float64) ([]*matrix.Dense, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("nn.ComputeGradient: %d inputs, %d targets: %w", len(x), len(y), ErrBatchSize)
	}
	for i := range x {
		if err := n.checkInput("ComputeGradient", x[i]); err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		if err := n.checkTarget("ComputeGradient", y[i]); err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
	}

	bigDelta := make([]*matrix.Dense, len(n.w))
	for l, w := range n.w {
		m, err := matrix.New(w.Rows(), w.Cols())
		if err != nil {
			return nil, fmt.Errorf("nn.ComputeGradient: %w", err)
		}
		bigDelta[l] = m
	}

	var err error
	if n.parallel.Enabled {
		err = n.accumulateParallel(bigDelta, x, y)
	} else {
		err = n.accumulate(bigDelta, x, y)
	}
	if err != nil {
		return nil, fmt.Errorf("nn.ComputeGradient: %w", err)
	}

	grads := make([]*matrix.Dense, len(bigDelta))
	for l, m := range bigDelta {
		grads[l] = matrix.Divide(m, float64(len(x)))
	}
	return grads, nil
}

type examplePass struct {
	a     []*matrix.Dense
	delta []*matrix.Dense
}

func (n *Network) pass(x, y []float64) (examplePass, error) {
	fv, err := n.FeedForward(x)
	if err != nil {
		return examplePass{}, err
	}
	delta, err := n.Backprop(fv, y)
	if err != nil {
		return examplePass{}, err
	}
	return examplePass{a: fv.A, delta: delta}, nil
}

func (n *Network) accumulate(bigDelta []*matrix.Dense, x, y [][]float64) error {
	for i := range x {
		p, err := n.pass(x[i], y[i])
		if err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		for l, m := range bigDelta {
			if err := matrix.AddOuterInPlace(m, p.delta[l+1], p.a[l]); err != nil {
				return fmt.Errorf("example %d, layer %d: %w", i, l, err)
			}
		}
	}
	return nil
}

// accumulateParallel runs the passes of a window of examples concurrently,
// then reduces the window row by row. Each row of bigDelta is owned by one
// goroutine and sums the examples in index order.
func (n *Network) accumulateParallel(bigDelta []*matrix.Dense, x, y [][]float64) error {
	passes := make([]examplePass, min(gradientWindow, len(x)))
	for start := 0; start < len(x); start += gradientWindow {
		end := min(start+gradientWindow, len(x))
		window := passes[:end-start]

		err := parallel.ForErr(len(window), func(i int) error {
			p, err := n.pass(x[start+i], y[start+i])
			if err != nil {
				return fmt.Errorf("example %d: %w", start+i, err)
			}
			window[i] = p
			return nil
		}, n.parallel)
		if err != nil {
			return err
		}

		for l, m := range bigDelta {
			err := parallel.ForErr(m.Rows(), func(r int) error {
				for i := range window {
					if err := matrix.AddOuterRowsInPlace(m, window[i].delta[l+1], window[i].a[l], r, r+1); err != nil {
						return fmt.Errorf("example %d, layer %d: %w", start+i, l, err)
					}
				}
				return nil
			}, n.parallel)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Update applies grads to the weights through opt. The gradient must come
// from ComputeGradient on this network (same count and shapes); otherwise no
// weight changes.
func (n *Network) Update(opt optim.Optimizer, grads []*matrix.Dense) error {
	if err := opt.Step(n.w, grads); err != nil {
		return fmt.Errorf("nn.Update: %w", err)
	}
	return nil
}

// TrainBatch performs one gradient descent step on the batch:
// w[l] -= lr * gradient[l]. On error the weights are unchanged.
func (n *Network) TrainBatch(x, y [][]float64, lr float64) error {
	grads, err := n.ComputeGradient(x, y)
	if err != nil {
		return err
	}
	sgd := optim.NewSGD(optim.SGDConfig{})
	sgd.SetLR(lr)
	return n.Update(sgd, grads)
}
