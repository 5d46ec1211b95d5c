package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/ninja/internal/matrix"
	"github.com/born-ml/ninja/internal/nn"
	"github.com/born-ml/ninja/internal/optim"
	"github.com/born-ml/ninja/internal/parallel"
)

var (
	nandX = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	nandY = [][]float64{{1}, {1}, {1}, {0}}
)

func randomBatch(rng *rand.Rand, n, inputs, outputs int) (x, y [][]float64) {
	x = make([][]float64, n)
	y = make([][]float64, n)
	for i := range x {
		x[i] = make([]float64, inputs)
		for j := range x[i] {
			x[i][j] = rng.Float64()
		}
		y[i] = make([]float64, outputs)
		y[i][rng.Intn(outputs)] = 1
	}
	return x, y
}

func flatten(ms []*matrix.Dense) []float64 {
	var out []float64
	for _, m := range ms {
		out = append(out, m.RawData()...)
	}
	return out
}

func unflatten(t *testing.T, like []*matrix.Dense, flat []float64) []*matrix.Dense {
	t.Helper()
	out := make([]*matrix.Dense, len(like))
	off := 0
	for l, m := range like {
		n := m.Len()
		w, err := matrix.NewFromValues(m.Rows(), m.Cols(), flat[off:off+n]...)
		require.NoError(t, err)
		out[l] = w
		off += n
	}
	return out
}

func TestComputeGradient_MatchesFiniteDifferences(t *testing.T) {
	net, err := nn.New([]int{3, 4, 2}, nn.WithSeed(42))
	require.NoError(t, err)
	x, y := randomBatch(rand.New(rand.NewSource(3)), 5, 3, 2)

	grads, err := net.ComputeGradient(x, y)
	require.NoError(t, err)

	weights := net.Weights()
	loss := func(flat []float64) float64 {
		probe, err := nn.FromWeights(unflatten(t, weights, flat))
		require.NoError(t, err)
		v, err := probe.Loss(x, y)
		require.NoError(t, err)
		return v
	}
	numeric := fd.Gradient(nil, loss, flatten(weights), &fd.Settings{
		Formula: fd.Central,
		Step:    1e-5,
	})

	assert.InDeltaSlice(t, numeric, flatten(grads), 1e-6)
}

func TestComputeGradient_SingleExampleIsOuterProduct(t *testing.T) {
	net := mustNetwork(t, fullThreeLayerWeights(t))
	x := []float64{0.5, -0.25, 1}
	y := []float64{1, 0}

	fv, err := net.FeedForward(x)
	require.NoError(t, err)
	d, err := net.Backprop(fv, y)
	require.NoError(t, err)

	grads, err := net.ComputeGradient([][]float64{x}, [][]float64{y})
	require.NoError(t, err)
	require.Len(t, grads, 2)

	for l := range grads {
		want, err := matrix.Mul(d[l+1], matrix.Transpose(fv.A[l]))
		require.NoError(t, err)
		assert.True(t, matrix.EqualApprox(want, grads[l], 1e-12), "layer %d", l)
	}
}

func TestComputeGradient_ParallelIsBitIdentical(t *testing.T) {
	net, err := nn.New([]int{6, 9, 4}, nn.WithSeed(11))
	require.NoError(t, err)
	// More examples than one fan-out window.
	x, y := randomBatch(rand.New(rand.NewSource(5)), 600, 6, 4)

	seq, err := net.ComputeGradient(x, y)
	require.NoError(t, err)

	net.SetParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	par, err := net.ComputeGradient(x, y)
	require.NoError(t, err)

	require.Len(t, par, len(seq))
	for l := range seq {
		assert.Equal(t, seq[l].Data(), par[l].Data(), "layer %d", l)
	}
}

func TestComputeGradient_Errors(t *testing.T) {
	net := mustNetwork(t, nandWeights(t))

	_, err := net.ComputeGradient(nil, nil)
	require.ErrorIs(t, err, nn.ErrBatchSize)

	_, err = net.ComputeGradient(nandX, nandY[:3])
	require.ErrorIs(t, err, nn.ErrBatchSize)

	_, err = net.ComputeGradient([][]float64{{0, 0}, {1}}, [][]float64{{1}, {0}})
	require.ErrorIs(t, err, nn.ErrInputSize)
	assert.Contains(t, err.Error(), "example 1")

	_, err = net.ComputeGradient([][]float64{{0, 0}}, [][]float64{{1, 0}})
	require.ErrorIs(t, err, nn.ErrTargetSize)
}

func TestTrainBatch_ErrorLeavesWeightsUnchanged(t *testing.T) {
	net := mustNetwork(t, nandWeights(t))
	before := net.Weights()

	err := net.TrainBatch(nandX, [][]float64{{1}, {1}, {1}, {0, 1}}, 0.5)
	require.ErrorIs(t, err, nn.ErrTargetSize)

	for l, w := range net.Weights() {
		assert.Equal(t, before[l].Data(), w.Data(), "layer %d", l)
	}
}

func TestUpdate_RejectsForeignGradient(t *testing.T) {
	net := mustNetwork(t, nandWeights(t))
	before := net.Weights()

	grads := []*matrix.Dense{mustDense(t, 1, 3, 1, 1, 1)}
	err := net.Update(optim.NewSGD(optim.SGDConfig{LR: 1}), grads)
	require.ErrorIs(t, err, optim.ErrParamMismatch)

	for l, w := range net.Weights() {
		assert.Equal(t, before[l].Data(), w.Data(), "layer %d", l)
	}
}

func TestTrainBatch_MatchesManualStep(t *testing.T) {
	net := mustNetwork(t, nandWeights(t))
	grads, err := net.ComputeGradient(nandX, nandY)
	require.NoError(t, err)
	before := net.Weights()

	require.NoError(t, net.TrainBatch(nandX, nandY, 0.5))

	for l, w := range net.Weights() {
		want, err := matrix.Sub(before[l], matrix.Scale(grads[l], 0.5))
		require.NoError(t, err)
		assert.True(t, matrix.EqualApprox(want, w, 1e-15), "layer %d", l)
	}
}

// TestTrainNand trains a 2-1-1 network from the default seed with batch
// gradient descent and expects the NAND truth table.
func TestTrainNand(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 100000-iteration training in short mode")
	}

	net, err := nn.New([]int{2, 1, 1})
	require.NoError(t, err)

	before, err := net.Loss(nandX, nandY)
	require.NoError(t, err)

	for i := 0; i < 100000; i++ {
		require.NoError(t, net.TrainBatch(nandX, nandY, 0.01))
	}

	isOne(t, output(t, net, 0, 0))
	isOne(t, output(t, net, 0, 1))
	isOne(t, output(t, net, 1, 0))
	isZero(t, output(t, net, 1, 1))

	after, err := net.Loss(nandX, nandY)
	require.NoError(t, err)
	assert.Less(t, after, before)
}

func BenchmarkComputeGradient(b *testing.B) {
	net, err := nn.New([]int{784, 30, 10})
	require.NoError(b, err)
	x, y := randomBatch(rand.New(rand.NewSource(1)), 10, 784, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := net.ComputeGradient(x, y); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComputeGradientParallel(b *testing.B) {
	net, err := nn.New([]int{784, 30, 10}, nn.WithParallel(parallel.DefaultConfig()))
	require.NoError(b, err)
	x, y := randomBatch(rand.New(rand.NewSource(1)), 100, 784, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := net.ComputeGradient(x, y); err != nil {
			b.Fatal(err)
		}
	}
}
