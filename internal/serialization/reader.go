package serialization

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/ninja/internal/matrix"
	"github.com/born-ml/ninja/internal/nn"
)

// lineReader yields the non-blank, trimmed lines of a model stream together
// with their 1-based line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &lineReader{sc: sc}
}

// next returns the next non-blank line. ok is false at EOF or on a read
// error (see err).
func (lr *lineReader) next() (text string, ok bool) {
	for lr.sc.Scan() {
		lr.line++
		text = strings.TrimSpace(lr.sc.Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}

func (lr *lineReader) err() error {
	return lr.sc.Err()
}

// ReadModel parses a network from r. Options are passed to nn.FromWeights.
// A malformed stream yields a *ParseError and no network.
func ReadModel(r io.Reader, opts ...nn.Option) (*nn.Network, error) {
	lr := newLineReader(r)

	h, err := readHeader(lr)
	if err != nil {
		return nil, err
	}

	weights := make([]*matrix.Dense, h.NumLayers-1)
	for l := range weights {
		if weights[l], err = readMatrix(lr, h, l); err != nil {
			return nil, err
		}
	}

	if _, ok := lr.next(); ok {
		return nil, parseErrorf(lr.line, "trailing data after %d weight matrices", len(weights))
	}
	if err := lr.err(); err != nil {
		return nil, fmt.Errorf("serialization.ReadModel: %w", err)
	}

	net, err := nn.FromWeights(weights, opts...)
	if err != nil {
		return nil, fmt.Errorf("serialization.ReadModel: %w", err)
	}
	return net, nil
}

func readHeader(lr *lineReader) (Header, error) {
	var (
		h            Header
		sawNumLayers bool
	)
	for {
		text, ok := lr.next()
		if !ok {
			if err := lr.err(); err != nil {
				return Header{}, fmt.Errorf("serialization.ReadModel: %w", err)
			}
			return Header{}, parseErrorf(lr.line, "missing %q line", weightsMarker)
		}
		if text == weightsMarker {
			break
		}

		key, value, found := strings.Cut(text, "=")
		if !found {
			return Header{}, parseErrorf(lr.line, "header line %q is not key=value", text)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case keyNumLayers:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Header{}, parseErrorf(lr.line, "invalid %s %q", keyNumLayers, value)
			}
			h.NumLayers = n
			sawNumLayers = true
		case keyLayerSizes:
			fields := strings.Fields(value)
			sizes := make([]int, len(fields))
			for i, f := range fields {
				s, err := strconv.Atoi(f)
				if err != nil {
					return Header{}, parseErrorf(lr.line, "invalid %s entry %q", keyLayerSizes, f)
				}
				sizes[i] = s
			}
			h.LayerSizes = sizes
		}
	}

	if err := validateHeader(h, sawNumLayers, lr.line); err != nil {
		return Header{}, err
	}
	return h, nil
}

func readMatrix(lr *lineReader, h Header, l int) (*matrix.Dense, error) {
	rows, cols := h.matrixShape(l)
	values := make([]float64, 0, rows*cols)
	for row := 0; row < rows; row++ {
		text, ok := lr.next()
		if !ok {
			if err := lr.err(); err != nil {
				return nil, fmt.Errorf("serialization.ReadModel: %w", err)
			}
			return nil, parseErrorf(lr.line, "premature end of model: matrix %d (%s) has %d of %d rows",
				l, describeShape(rows, cols), row, rows)
		}
		fields := strings.Fields(text)
		if err := checkRow(fields, cols, lr.line, l, row); err != nil {
			return nil, err
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, parseErrorf(lr.line, "invalid number %q", f)
			}
			values = append(values, v)
		}
	}

	m, err := matrix.NewFromValues(rows, cols, values...)
	if err != nil {
		return nil, fmt.Errorf("serialization.ReadModel: matrix %d: %w", l, err)
	}
	return m, nil
}

// LoadFile reads a network from the model file at path.
func LoadFile(path string, opts ...nn.Option) (*nn.Network, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer func() { _ = f.Close() }()

	net, err := ReadModel(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}
