// Package dataset reads labeled examples in the sparse text format
//
//	<label> <index>:<value> <index>:<value> ...
//
// and groups them into batches of input and one-hot target vectors. Feature
// indexes are 0-based; absent features are 0. A "qid:<n>" field is accepted
// and ignored.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sentinel errors wrapped by *LineError.
var (
	ErrSyntax       = errors.New("dataset: syntax error")
	ErrLabelRange   = errors.New("dataset: label out of range")
	ErrFeatureRange = errors.New("dataset: feature index out of range")
)

const maxLineBytes = 16 << 20

// LineError reports the 1-based line of a bad example.
type LineError struct {
	Line int
	Err  error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Example is one parsed line.
type Example struct {
	Label  int
	Input  []float64 // len == inputs
	Target []float64 // one-hot, len == outputs
}

// ParseExample parses one example line for a network with the given input
// and output layer sizes.
func ParseExample(line string, inputs, outputs int) (Example, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Example{}, fmt.Errorf("empty example: %w", ErrSyntax)
	}

	label, err := strconv.Atoi(fields[0])
	if err != nil {
		return Example{}, fmt.Errorf("label %q: %w", fields[0], ErrSyntax)
	}
	if label < 0 || label >= outputs {
		return Example{}, fmt.Errorf("label %d not in [0, %d); wrong network architecture?: %w",
			label, outputs, ErrLabelRange)
	}

	input, err := parseFeatures(fields[1:], inputs)
	if err != nil {
		return Example{}, err
	}
	ex := Example{
		Label:  label,
		Input:  input,
		Target: make([]float64, outputs),
	}
	ex.Target[label] = 1
	return ex, nil
}

// ParseInput parses the features of an example line for a network with
// inputs input units. The label field is required but not interpreted, so
// lines with unknown or placeholder labels can be scored.
func ParseInput(line string, inputs int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty example: %w", ErrSyntax)
	}
	return parseFeatures(fields[1:], inputs)
}

func parseFeatures(fields []string, inputs int) ([]float64, error) {
	input := make([]float64, inputs)
	for _, f := range fields {
		key, val, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("feature %q is not index:value: %w", f, ErrSyntax)
		}
		if key == "qid" {
			continue
		}
		index, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("feature index %q: %w", key, ErrSyntax)
		}
		if index < 0 || index >= inputs {
			return nil, fmt.Errorf("feature index %d not in [0, %d); wrong network architecture?: %w",
				index, inputs, ErrFeatureRange)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("feature value %q: %w", val, ErrSyntax)
		}
		input[index] = v
	}
	return input, nil
}

// Batch is a run of consecutive examples.
type Batch struct {
	Examples  []Example
	FirstLine int // line number of Examples[0]
}

// Len returns the number of examples.
func (b Batch) Len() int { return len(b.Examples) }

// Inputs returns the input vectors of the batch.
func (b Batch) Inputs() [][]float64 {
	out := make([][]float64, len(b.Examples))
	for i, ex := range b.Examples {
		out[i] = ex.Input
	}
	return out
}

// Targets returns the one-hot target vectors of the batch.
func (b Batch) Targets() [][]float64 {
	out := make([][]float64, len(b.Examples))
	for i, ex := range b.Examples {
		out[i] = ex.Target
	}
	return out
}

// Iterator reads batches from a stream. Use it like bufio.Scanner:
//
//	it := dataset.NewIterator(f, 10, 784, 10)
//	for it.Next() {
//	    b := it.Batch()
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
type Iterator struct {
	sc        *bufio.Scanner
	batchSize int
	inputs    int
	outputs   int
	line      int
	batch     Batch
	err       error
}

// NewIterator returns an iterator yielding batches of batchSize examples; the
// last batch holds the remainder. batchSize <= 0 puts the whole stream in a
// single batch. Blank lines are skipped.
func NewIterator(r io.Reader, batchSize, inputs, outputs int) *Iterator {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Iterator{sc: sc, batchSize: batchSize, inputs: inputs, outputs: outputs}
}

// Next reads the next batch. It returns false at the end of the stream or on
// the first error.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	var examples []Example
	if it.batchSize > 0 {
		examples = make([]Example, 0, it.batchSize)
	}
	first := 0
	for it.batchSize <= 0 || len(examples) < it.batchSize {
		if !it.sc.Scan() {
			if err := it.sc.Err(); err != nil {
				it.err = fmt.Errorf("dataset: read: %w", err)
				return false
			}
			break
		}
		it.line++
		text := it.sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		ex, err := ParseExample(text, it.inputs, it.outputs)
		if err != nil {
			it.err = &LineError{Line: it.line, Err: err}
			return false
		}
		if len(examples) == 0 {
			first = it.line
		}
		examples = append(examples, ex)
	}

	if len(examples) == 0 {
		return false
	}
	it.batch = Batch{Examples: examples, FirstLine: first}
	return true
}

// Batch returns the batch read by the last successful Next.
func (it *Iterator) Batch() Batch {
	return it.batch
}

// Err returns the first error met, nil at a clean end of stream.
func (it *Iterator) Err() error {
	return it.err
}

// ReadAll parses every example of r.
func ReadAll(r io.Reader, inputs, outputs int) ([]Example, error) {
	it := NewIterator(r, 0, inputs, outputs)
	if it.Next() {
		return it.Batch().Examples, nil
	}
	return nil, it.Err()
}
