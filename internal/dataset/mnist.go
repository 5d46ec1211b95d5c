package dataset

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/petar/GoMNIST"
)

// Gzipped IDX file names of the MNIST distribution.
const (
	MNISTTrainImages = "train-images-idx3-ubyte.gz"
	MNISTTrainLabels = "train-labels-idx1-ubyte.gz"
	MNISTTestImages  = "t10k-images-idx3-ubyte.gz"
	MNISTTestLabels  = "t10k-labels-idx1-ubyte.gz"
)

// LoadMNIST reads the training and test sets from the gzipped IDX files in
// dir.
func LoadMNIST(dir string) (train, test *GoMNIST.Set, err error) {
	train, err = GoMNIST.ReadSet(filepath.Join(dir, MNISTTrainImages), filepath.Join(dir, MNISTTrainLabels))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load MNIST training set: %w", err)
	}
	test, err = GoMNIST.ReadSet(filepath.Join(dir, MNISTTestImages), filepath.Join(dir, MNISTTestLabels))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load MNIST test set: %w", err)
	}
	return train, test, nil
}

// WriteExamples writes set in the sparse example format. Pixel i of an image
// becomes feature i with value pixel/255; zero pixels are omitted. It returns
// the number of examples written.
func WriteExamples(w io.Writer, set *GoMNIST.Set) (int, error) {
	if len(set.Images) != len(set.Labels) {
		return 0, fmt.Errorf("dataset: %d images, %d labels: %w", len(set.Images), len(set.Labels), ErrSyntax)
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 4096)
	for i, img := range set.Images {
		buf = strconv.AppendInt(buf[:0], int64(set.Labels[i]), 10)
		for j, p := range img {
			if p == 0 {
				continue
			}
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(j), 10)
			buf = append(buf, ':')
			buf = strconv.AppendFloat(buf, float64(p)/255, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return i, fmt.Errorf("dataset: write example %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return len(set.Images), fmt.Errorf("dataset: flush: %w", err)
	}
	return len(set.Images), nil
}

// MNISTExamples converts set to in-memory examples with ten one-hot outputs,
// scaling pixels to [0, 1].
func MNISTExamples(set *GoMNIST.Set) ([]Example, error) {
	if len(set.Images) != len(set.Labels) {
		return nil, fmt.Errorf("dataset: %d images, %d labels: %w", len(set.Images), len(set.Labels), ErrSyntax)
	}
	out := make([]Example, len(set.Images))
	for i, img := range set.Images {
		label := int(set.Labels[i])
		if label < 0 || label >= 10 {
			return nil, &LineError{Line: i + 1, Err: fmt.Errorf("label %d: %w", label, ErrLabelRange)}
		}
		ex := Example{
			Label:  label,
			Input:  make([]float64, len(img)),
			Target: make([]float64, 10),
		}
		for j, p := range img {
			ex.Input[j] = float64(p) / 255
		}
		ex.Target[label] = 1
		out[i] = ex
	}
	return out, nil
}
