package train

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/born-ml/ninja/internal/dataset"
	"github.com/born-ml/ninja/internal/nn"
)

// Predictor scores example lines with a trained network.
//
// For every non-blank input line it writes
//
//	<best index>\t<best score>
//
// and, when Verbose is set, one "\t<score>\t<index>" line per output unit in
// rank order. Scores use six decimals.
type Predictor struct {
	Net     *nn.Network
	Verbose bool
}

// Predict reads examples from r and writes predictions to w. It returns the
// number of examples scored. Labels in r are not interpreted.
func (p *Predictor) Predict(r io.Reader, w io.Writer) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	bw := bufio.NewWriter(w)

	n, line := 0, 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		x, err := dataset.ParseInput(text, p.Net.InputSize())
		if err != nil {
			return n, &dataset.LineError{Line: line, Err: err}
		}
		out, err := p.Net.Apply(x)
		if err != nil {
			return n, &dataset.LineError{Line: line, Err: err}
		}
		if err := p.write(bw, nn.Sort(out)); err != nil {
			return n, err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("failed to read examples: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("failed to write predictions: %w", err)
	}
	return n, nil
}

func (p *Predictor) write(w io.Writer, results []nn.Result) error {
	best := results[0]
	if _, err := fmt.Fprintf(w, "%d\t%f\n", best.Index, best.Score); err != nil {
		return fmt.Errorf("failed to write predictions: %w", err)
	}
	if !p.Verbose {
		return nil
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "\t%f\t%d\n", r.Score, r.Index); err != nil {
			return fmt.Errorf("failed to write predictions: %w", err)
		}
	}
	return nil
}
