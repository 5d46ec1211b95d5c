package train_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ninja/internal/dataset"
	"github.com/born-ml/ninja/internal/nn"
	"github.com/born-ml/ninja/internal/parallel"
	"github.com/born-ml/ninja/internal/train"
)

// nandExamples labels NAND(x1, x2) over a 2-unit output layer.
const nandExamples = `1 0:0 1:0
1 0:0 1:1
1 0:1 1:0
0 0:1 1:1
1 1:0
1 0:0.0 1:1.0
0 0:1 1:1
`

func stringSource(text string) train.Source {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(text)), nil
	}
}

func newNet(t *testing.T) *nn.Network {
	t.Helper()
	net, err := nn.New([]int{2, 3, 2}, nn.WithSeed(5))
	require.NoError(t, err)
	return net
}

func TestConfig(t *testing.T) {
	cfg := train.DefaultConfig()
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 5, cfg.Epochs)
	assert.Equal(t, 0.7, cfg.LearningRate)
	assert.False(t, cfg.Parallel.Enabled)
	require.NoError(t, cfg.Validate())

	bad := []train.Config{
		{Epochs: -1, LearningRate: 1},
		{Epochs: 1, LearningRate: 0},
		{Epochs: 1, LearningRate: 1, Parallel: parallel.Config{NumWorkers: -2}},
	}
	for _, c := range bad {
		require.ErrorIs(t, c.Validate(), train.ErrConfig, "%+v", c)
	}
}

func TestTrain_MatchesManualLoop(t *testing.T) {
	cfg := train.Config{BatchSize: 3, Epochs: 2, LearningRate: 0.5}
	net := newNet(t)
	_, err := train.NewTrainer(cfg).Train(context.Background(), net, stringSource(nandExamples))
	require.NoError(t, err)

	manual := newNet(t)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		it := dataset.NewIterator(strings.NewReader(nandExamples), cfg.BatchSize, 2, 2)
		for it.Next() {
			b := it.Batch()
			require.NoError(t, manual.TrainBatch(b.Inputs(), b.Targets(), cfg.LearningRate))
		}
		require.NoError(t, it.Err())
	}

	for l, w := range manual.Weights() {
		got, err := net.Weight(l)
		require.NoError(t, err)
		assert.Equal(t, w.Data(), got.Data(), "layer %d", l)
	}
}

func TestTrain_Stats(t *testing.T) {
	var (
		out      bytes.Buffer
		seen     []int
		recorded []train.EpochStats
	)
	tr := &train.Trainer{
		Config: train.Config{BatchSize: 3, Epochs: 2, LearningRate: 0.5},
		Out:    &out,
		OnEpoch: func(s train.EpochStats) {
			seen = append(seen, s.Epoch)
		},
		Recorder: train.RecorderFunc(func(_ context.Context, s train.EpochStats) error {
			recorded = append(recorded, s)
			return nil
		}),
	}

	stats, err := tr.Train(context.Background(), newNet(t), stringSource(nandExamples))
	require.NoError(t, err)
	require.Len(t, stats, 2)

	for i, s := range stats {
		assert.Equal(t, i+1, s.Epoch)
		assert.Equal(t, 3, s.Batches)
		assert.Equal(t, 7, s.Examples)
		assert.Greater(t, s.Loss, 0.0)
	}
	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, stats, recorded)
	assert.Contains(t, out.String(), "Epoch: 1\n")
	assert.Contains(t, out.String(), "Epoch  2/2: Loss=")
}

func TestTrain_LossDecreases(t *testing.T) {
	tr := train.NewTrainer(train.Config{BatchSize: 0, Epochs: 300, LearningRate: 0.5})
	stats, err := tr.Train(context.Background(), newNet(t), stringSource(nandExamples))
	require.NoError(t, err)
	require.Len(t, stats, 300)

	for _, s := range stats {
		assert.Equal(t, 1, s.Batches)
	}
	assert.Less(t, stats[len(stats)-1].Loss, stats[0].Loss)
}

func TestTrain_ParallelMatchesSequential(t *testing.T) {
	seq := newNet(t)
	_, err := train.NewTrainer(train.Config{BatchSize: 4, Epochs: 3, LearningRate: 0.5}).
		Train(context.Background(), seq, stringSource(nandExamples))
	require.NoError(t, err)

	par := newNet(t)
	cfg := train.Config{BatchSize: 4, Epochs: 3, LearningRate: 0.5,
		Parallel: parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}}
	_, err = train.NewTrainer(cfg).Train(context.Background(), par, stringSource(nandExamples))
	require.NoError(t, err)

	for l, w := range seq.Weights() {
		got, err := par.Weight(l)
		require.NoError(t, err)
		assert.Equal(t, w.Data(), got.Data(), "layer %d", l)
	}
}

func TestTrain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	net := newNet(t)
	before := net.Weights()
	stats, err := train.NewTrainer(train.DefaultConfig()).Train(ctx, net, stringSource(nandExamples))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stats)

	for l, w := range net.Weights() {
		assert.Equal(t, before[l].Data(), w.Data())
	}
}

func TestTrain_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := train.NewTrainer(train.Config{Epochs: 1}).Train(ctx, newNet(t), stringSource(nandExamples))
	require.ErrorIs(t, err, train.ErrConfig)

	_, err = train.NewTrainer(train.DefaultConfig()).Train(ctx, newNet(t), stringSource("1 0:1\n2 0:1\n"))
	require.ErrorIs(t, err, dataset.ErrLabelRange)
	var lerr *dataset.LineError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 2, lerr.Line)

	openErr := errors.New("no such source")
	_, err = train.NewTrainer(train.DefaultConfig()).Train(ctx, newNet(t), func() (io.ReadCloser, error) {
		return nil, openErr
	})
	require.ErrorIs(t, err, openErr)

	recErr := errors.New("database is locked")
	tr := train.NewTrainer(train.Config{BatchSize: 2, Epochs: 3, LearningRate: 1})
	tr.Recorder = train.RecorderFunc(func(context.Context, train.EpochStats) error { return recErr })
	stats, err := tr.Train(ctx, newNet(t), stringSource(nandExamples))
	require.ErrorIs(t, err, recErr)
	assert.Len(t, stats, 1)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nand.txt")
	require.NoError(t, os.WriteFile(path, []byte(nandExamples), 0o600))

	stats, err := train.NewTrainer(train.Config{BatchSize: 10, Epochs: 1, LearningRate: 1}).
		Train(context.Background(), newNet(t), train.FileSource(path))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 7, stats[0].Examples)

	_, err = train.FileSource(filepath.Join(t.TempDir(), "missing"))()
	require.ErrorIs(t, err, os.ErrNotExist)
}
