package train

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/born-ml/ninja/internal/dataset"
	"github.com/born-ml/ninja/internal/nn"
)

// Source opens the example stream; it is called once per epoch.
type Source func() (io.ReadCloser, error)

// FileSource returns a Source reading the example file at path.
func FileSource(path string) Source {
	return func() (io.ReadCloser, error) {
		//nolint:gosec // G304: File path comes from user input, which is expected for example files
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open examples: %w", err)
		}
		return f, nil
	}
}

// EpochStats summarizes one epoch.
type EpochStats struct {
	Epoch    int           // 1-based
	Batches  int           // Gradient steps taken
	Examples int           // Examples seen
	Loss     float64       // Mean cross-entropy per example, measured before each step
	Duration time.Duration // Wall time of the epoch
}

// Recorder persists epoch statistics.
type Recorder interface {
	RecordEpoch(ctx context.Context, stats EpochStats) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, stats EpochStats) error

// RecordEpoch calls f.
func (f RecorderFunc) RecordEpoch(ctx context.Context, stats EpochStats) error {
	return f(ctx, stats)
}

// Trainer runs batch gradient descent over an example source.
type Trainer struct {
	Config   Config
	Out      io.Writer        // Progress lines; nil = silent
	OnEpoch  func(EpochStats) // Called after every completed epoch; optional
	Recorder Recorder         // Optional
}

// NewTrainer creates a trainer with cfg and no output.
func NewTrainer(cfg Config) *Trainer {
	return &Trainer{Config: cfg}
}

// Train runs Config.Epochs passes over src, updating net after every batch.
// ctx is checked between batches; on cancellation Train returns the epochs
// completed so far together with the context error. A failed batch aborts
// training, and the weights reflect every batch before it.
func (t *Trainer) Train(ctx context.Context, net *nn.Network, src Source) ([]EpochStats, error) {
	if err := t.Config.Validate(); err != nil {
		return nil, err
	}
	net.SetParallel(t.Config.Parallel)

	stats := make([]EpochStats, 0, t.Config.Epochs)
	for epoch := 1; epoch <= t.Config.Epochs; epoch++ {
		t.printf("Epoch: %d\n", epoch)
		s, err := t.runEpoch(ctx, net, src, epoch)
		if err != nil {
			return stats, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		stats = append(stats, s)

		t.printf("Epoch %2d/%d: Loss=%.4f, Examples=%d, Batches=%d, Time=%v\n",
			epoch, t.Config.Epochs, s.Loss, s.Examples, s.Batches, s.Duration.Round(time.Millisecond))
		if t.OnEpoch != nil {
			t.OnEpoch(s)
		}
		if t.Recorder != nil {
			if err := t.Recorder.RecordEpoch(ctx, s); err != nil {
				return stats, fmt.Errorf("epoch %d: record: %w", epoch, err)
			}
		}
	}
	return stats, nil
}

func (t *Trainer) runEpoch(ctx context.Context, net *nn.Network, src Source, epoch int) (s EpochStats, err error) {
	start := time.Now()
	s.Epoch = epoch

	r, err := src()
	if err != nil {
		return s, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var totalLoss float64
	it := dataset.NewIterator(r, t.Config.BatchSize, net.InputSize(), net.OutputSize())
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		b := it.Batch()
		x, y := b.Inputs(), b.Targets()

		loss, err := net.Loss(x, y)
		if err != nil {
			return s, fmt.Errorf("batch at line %d: %w", b.FirstLine, err)
		}
		if err := net.TrainBatch(x, y, t.Config.LearningRate); err != nil {
			return s, fmt.Errorf("batch at line %d: %w", b.FirstLine, err)
		}
		totalLoss += loss * float64(b.Len())
		s.Batches++
		s.Examples += b.Len()
	}
	if err := it.Err(); err != nil {
		return s, err
	}

	if s.Examples > 0 {
		s.Loss = totalLoss / float64(s.Examples)
	}
	s.Duration = time.Since(start)
	return s, nil
}

func (t *Trainer) printf(format string, args ...any) {
	if t.Out != nil {
		fmt.Fprintf(t.Out, format, args...)
	}
}
