package dataset_test

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petar/GoMNIST"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ninja/internal/dataset"
)

// writeIDX writes a gzipped IDX file: big-endian int32 header words followed
// by the payload bytes.
func writeIDX(t *testing.T, path string, header []int32, payload []byte) {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	for _, h := range header {
		require.NoError(t, binary.Write(zw, binary.BigEndian, h))
	}
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func writeMNISTDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// Two 2x2 training images and one test image.
	writeIDX(t, filepath.Join(dir, dataset.MNISTTrainImages), []int32{0x803, 2, 2, 2},
		[]byte{0, 255, 0, 51, 0, 0, 0, 0})
	writeIDX(t, filepath.Join(dir, dataset.MNISTTrainLabels), []int32{0x801, 2}, []byte{7, 3})
	writeIDX(t, filepath.Join(dir, dataset.MNISTTestImages), []int32{0x803, 1, 2, 2},
		[]byte{255, 255, 255, 255})
	writeIDX(t, filepath.Join(dir, dataset.MNISTTestLabels), []int32{0x801, 1}, []byte{1})
	return dir
}

func TestLoadMNIST(t *testing.T) {
	train, test, err := dataset.LoadMNIST(writeMNISTDir(t))
	require.NoError(t, err)

	assert.Equal(t, 2, train.NRow)
	assert.Equal(t, 2, train.NCol)
	require.Len(t, train.Images, 2)
	assert.Equal(t, []GoMNIST.Label{7, 3}, train.Labels)
	require.Len(t, test.Images, 1)

	var buf bytes.Buffer
	n, err := dataset.WriteExamples(&buf, train)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "7 1:1 3:0.2\n3\n", buf.String())

	// The output parses back as examples for a 4-10 network.
	examples, err := dataset.ReadAll(strings.NewReader(buf.String()), 4, 10)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, []float64{0, 1, 0, 0.2}, examples[0].Input)
	assert.Equal(t, 3, examples[1].Label)
}

func TestLoadMNIST_MissingFiles(t *testing.T) {
	_, _, err := dataset.LoadMNIST(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "training set")
}

func TestWriteExamples_Mismatch(t *testing.T) {
	set := &GoMNIST.Set{
		NRow:   1,
		NCol:   1,
		Images: []GoMNIST.RawImage{{1}},
	}
	_, err := dataset.WriteExamples(&bytes.Buffer{}, set)
	require.ErrorIs(t, err, dataset.ErrSyntax)
}

func TestMNISTExamples(t *testing.T) {
	train, _, err := dataset.LoadMNIST(writeMNISTDir(t))
	require.NoError(t, err)

	examples, err := dataset.MNISTExamples(train)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, 7, examples[0].Label)
	assert.Equal(t, []float64{0, 1, 0, 0.2}, examples[0].Input)
	assert.Len(t, examples[0].Target, 10)
	assert.Equal(t, 1.0, examples[0].Target[7])
	assert.Equal(t, 1.0, examples[1].Target[3])

	set := &GoMNIST.Set{NRow: 1, NCol: 1, Images: []GoMNIST.RawImage{{0}}, Labels: []GoMNIST.Label{12}}
	_, err = dataset.MNISTExamples(set)
	require.ErrorIs(t, err, dataset.ErrLabelRange)
}
