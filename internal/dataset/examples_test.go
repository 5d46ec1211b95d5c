package dataset_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ninja/internal/dataset"
)

func TestParseExample(t *testing.T) {
	ex, err := dataset.ParseExample("1 0:0.5 2:1  qid:7\t3:-2", 4, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, ex.Label)
	assert.Equal(t, []float64{0.5, 0, 1, -2}, ex.Input)
	assert.Equal(t, []float64{0, 1, 0}, ex.Target)
}

func TestParseExample_LabelOnly(t *testing.T) {
	ex, err := dataset.ParseExample("0", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, ex.Input)
	assert.Equal(t, []float64{1, 0}, ex.Target)
}

func TestParseExample_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"empty", "   ", dataset.ErrSyntax},
		{"bad label", "x 0:1", dataset.ErrSyntax},
		{"negative label", "-1 0:1", dataset.ErrLabelRange},
		{"label too big", "3 0:1", dataset.ErrLabelRange},
		{"missing colon", "1 0=1", dataset.ErrSyntax},
		{"bad index", "1 a:1", dataset.ErrSyntax},
		{"index too big", "1 4:1", dataset.ErrFeatureRange},
		{"negative index", "1 -1:1", dataset.ErrFeatureRange},
		{"bad value", "1 0:one", dataset.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dataset.ParseExample(tt.line, 4, 3)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIterator_BatchSizes(t *testing.T) {
	var lines []string
	for i := 0; i < 7; i++ {
		lines = append(lines, "1 0:1")
	}
	// Blank lines do not count as examples.
	text := strings.Join(lines[:3], "\n") + "\n\n" + strings.Join(lines[3:], "\n") + "\n"

	it := dataset.NewIterator(strings.NewReader(text), 3, 2, 2)
	var sizes, firsts []int
	for it.Next() {
		b := it.Batch()
		sizes = append(sizes, b.Len())
		firsts = append(firsts, b.FirstLine)
		assert.Len(t, b.Inputs(), b.Len())
		assert.Len(t, b.Targets(), b.Len())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []int{3, 3, 1}, sizes)
	assert.Equal(t, []int{1, 5, 8}, firsts)
	assert.False(t, it.Next())
}

func TestIterator_WholeStream(t *testing.T) {
	it := dataset.NewIterator(strings.NewReader("0 0:1\n1 1:1\n"), 0, 2, 2)
	require.True(t, it.Next())
	b := it.Batch()
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, b.Inputs())
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, b.Targets())
	assert.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestIterator_Empty(t *testing.T) {
	it := dataset.NewIterator(strings.NewReader("\n\n"), 2, 2, 2)
	assert.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestIterator_LineError(t *testing.T) {
	text := "0 0:1\n1 1:1\n\n5 0:1\n0 0:1\n"
	it := dataset.NewIterator(strings.NewReader(text), 10, 2, 2)
	assert.False(t, it.Next())

	err := it.Err()
	require.ErrorIs(t, err, dataset.ErrLabelRange)
	var lerr *dataset.LineError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 4, lerr.Line)
	assert.Contains(t, err.Error(), "line 4")

	// The iterator stays failed.
	assert.False(t, it.Next())
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestIterator_ReadError(t *testing.T) {
	it := dataset.NewIterator(errReader{}, 2, 2, 2)
	assert.False(t, it.Next())
	require.Error(t, it.Err())
	assert.Contains(t, it.Err().Error(), "boom")
}

func TestReadAll(t *testing.T) {
	examples, err := dataset.ReadAll(strings.NewReader("0 0:1\n\n1 1:0.25\n"), 2, 2)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, 1, examples[1].Label)
	assert.Equal(t, []float64{0, 0.25}, examples[1].Input)

	_, err = dataset.ReadAll(strings.NewReader("0 9:1\n"), 2, 2)
	require.ErrorIs(t, err, dataset.ErrFeatureRange)
}

func TestParseInput(t *testing.T) {
	input, err := dataset.ParseInput("? 1:0.5 qid:3", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 0}, input)

	_, err = dataset.ParseInput("", 3)
	require.ErrorIs(t, err, dataset.ErrSyntax)
	_, err = dataset.ParseInput("0 3:1", 3)
	require.ErrorIs(t, err, dataset.ErrFeatureRange)
}
