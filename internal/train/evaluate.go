package train

import (
	"fmt"
	"io"

	"github.com/born-ml/ninja/internal/dataset"
	"github.com/born-ml/ninja/internal/nn"
)

// Evaluation is the outcome of scoring labeled examples.
type Evaluation struct {
	Examples int
	Correct  int     // Examples whose top-ranked output is the label
	Loss     float64 // Mean cross-entropy
}

// Accuracy returns Correct/Examples, 0 for an empty evaluation.
func (e Evaluation) Accuracy() float64 {
	if e.Examples == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Examples)
}

// String formats the evaluation for the command line.
func (e Evaluation) String() string {
	return fmt.Sprintf("%d/%d correct (%.2f%%), loss=%.4f", e.Correct, e.Examples, e.Accuracy()*100, e.Loss)
}

// Evaluate scores every labeled example in r, batchSize lines at a time.
func Evaluate(net *nn.Network, r io.Reader, batchSize int) (Evaluation, error) {
	var (
		ev        Evaluation
		totalLoss float64
	)
	it := dataset.NewIterator(r, batchSize, net.InputSize(), net.OutputSize())
	for it.Next() {
		b := it.Batch()
		part, err := EvaluateExamples(net, b.Examples)
		if err != nil {
			return ev, fmt.Errorf("batch at line %d: %w", b.FirstLine, err)
		}
		ev.Examples += part.Examples
		ev.Correct += part.Correct
		totalLoss += part.Loss * float64(part.Examples)
	}
	if err := it.Err(); err != nil {
		return ev, err
	}
	if ev.Examples > 0 {
		ev.Loss = totalLoss / float64(ev.Examples)
	}
	return ev, nil
}

// EvaluateExamples scores in-memory examples. An example is correct when the
// top-ranked output is its label.
func EvaluateExamples(net *nn.Network, examples []dataset.Example) (Evaluation, error) {
	ev := Evaluation{Examples: len(examples)}
	if len(examples) == 0 {
		return ev, nil
	}
	x := make([][]float64, len(examples))
	y := make([][]float64, len(examples))
	for i, ex := range examples {
		out, err := net.Apply(ex.Input)
		if err != nil {
			return ev, fmt.Errorf("example %d: %w", i, err)
		}
		if best, ok := nn.Top(out); ok && best.Index == ex.Label {
			ev.Correct++
		}
		x[i], y[i] = ex.Input, ex.Target
	}
	loss, err := net.Loss(x, y)
	if err != nil {
		return ev, err
	}
	ev.Loss = loss
	return ev, nil
}
