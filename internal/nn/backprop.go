package nn

import (
	"fmt"

	"github.com/born-ml/ninja/internal/matrix"
)

// Backprop computes the per-layer error vectors for one example given the
// forward vectors fv and target y.
//
// The result has L entries; index 0 is nil. delta[L-1] = A[L-1] - y and, for
// 0 < l < L-1,
//
//	delta[l] = strip((w[l]ᵀ · delta[l+1]) ⊙ act'(prepend(Z[l])))
//
// so delta[l] has units[l] rows.
func (n *Network) Backprop(fv *ForwardVectors, y []float64) ([]*matrix.Dense, error) {
	if err := n.checkForward("Backprop", fv); err != nil {
		return nil, err
	}
	if err := n.checkTarget("Backprop", y); err != nil {
		return nil, err
	}

	layers := n.NumLayers()
	delta := make([]*matrix.Dense, layers)
	out := fv.Output().Clone()
	data := out.RawData()
	for i, t := range y {
		data[i] -= t
	}
	delta[layers-1] = out

	for l := layers - 2; l > 0; l-- {
		back, err := matrix.MulTransA(n.w[l], delta[l+1])
		if err != nil {
			return nil, fmt.Errorf("nn.Backprop: layer %d: %w", l, err)
		}
		zb, err := matrix.PrependBias(fv.Z[l])
		if err != nil {
			return nil, fmt.Errorf("nn.Backprop: layer %d: %w", l, err)
		}
		full, err := matrix.MulElem(back, n.act.ApplyDerivative(zb))
		if err != nil {
			return nil, fmt.Errorf("nn.Backprop: layer %d: %w", l, err)
		}
		if delta[l], err = matrix.StripBias(full); err != nil {
			return nil, fmt.Errorf("nn.Backprop: layer %d: %w", l, err)
		}
	}
	return delta, nil
}

func (n *Network) checkForward(op string, fv *ForwardVectors) error {
	layers := n.NumLayers()
	if fv == nil || len(fv.A) != layers || len(fv.Z) != layers {
		return fmt.Errorf("nn.%s: forward vectors do not match %d layers: %w", op, layers, ErrArchitecture)
	}
	for l := 0; l < layers; l++ {
		want := n.sizes[l]
		if l < layers-1 {
			want++
		}
		if a := fv.A[l]; a == nil || a.Cols() != 1 || a.Rows() != want {
			return fmt.Errorf("nn.%s: activation %d, want %dx1: %w", op, l, want, ErrArchitecture)
		}
		if l == 0 {
			continue
		}
		if z := fv.Z[l]; z == nil || z.Cols() != 1 || z.Rows() != n.sizes[l] {
			return fmt.Errorf("nn.%s: pre-activation %d, want %dx1: %w", op, l, n.sizes[l], ErrArchitecture)
		}
	}
	return nil
}
