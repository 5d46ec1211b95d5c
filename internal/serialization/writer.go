package serialization

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/born-ml/ninja/internal/nn"
)

// WriteModel writes net to w in the text model format. Numbers use the
// shortest representation that parses back to the same float64.
func WriteModel(w io.Writer, net *nn.Network) error {
	bw := bufio.NewWriter(w)
	sizes := net.LayerSizes()

	buf := make([]byte, 0, 64)
	buf = append(buf, keyNumLayers...)
	buf = append(buf, '=')
	buf = strconv.AppendInt(buf, int64(len(sizes)), 10)
	buf = append(buf, '\n')
	buf = append(buf, keyLayerSizes...)
	buf = append(buf, '=')
	for i, s := range sizes {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(s), 10)
	}
	buf = append(buf, '\n')
	buf = append(buf, weightsMarker...)
	buf = append(buf, '\n', '\n')
	if _, err := bw.Write(buf); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for l, m := range net.Weights() {
		data := m.RawData()
		for i := 0; i < m.Rows(); i++ {
			buf = buf[:0]
			for j, v := range data[i*m.Cols() : (i+1)*m.Cols()] {
				if j > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
			}
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("failed to write matrix %d: %w", l, err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write matrix %d: %w", l, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush model: %w", err)
	}
	return nil
}

// SaveFile writes net to path, replacing any existing file. The close error
// is reported.
func SaveFile(path string, net *nn.Network) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close model file: %w", cerr))
		}
	}()

	return WriteModel(f, net)
}
