package serialization

import "fmt"

// Validation limits for resource protection. A header beyond them is
// rejected before any weight storage is allocated.
const (
	MaxLayers    = 1024     // Maximum num_layers
	MaxLayerSize = 1 << 24  // Maximum units in a single layer
	MaxWeights   = 1 << 28  // Maximum weights over all matrices
	maxLineBytes = 64 << 20 // Longest accepted model line
)

// validateHeader checks a parsed header. line is the line of the "w" marker,
// reported for header problems that have no single line of their own.
func validateHeader(h Header, sawNumLayers bool, line int) error {
	if !sawNumLayers {
		return parseErrorf(line, "missing %s", keyNumLayers)
	}
	if h.NumLayers < 2 || h.NumLayers > MaxLayers {
		return parseErrorf(line, "%s=%d, want 2..%d", keyNumLayers, h.NumLayers, MaxLayers)
	}
	if len(h.LayerSizes) != h.NumLayers {
		return parseErrorf(line, "%s has %d entries, %s=%d",
			keyLayerSizes, len(h.LayerSizes), keyNumLayers, h.NumLayers)
	}
	for i, s := range h.LayerSizes {
		if s <= 0 || s > MaxLayerSize {
			return parseErrorf(line, "%s[%d]=%d, want 1..%d", keyLayerSizes, i, s, MaxLayerSize)
		}
	}

	total := 0
	for l := 0; l < h.NumLayers-1; l++ {
		rows, cols := h.matrixShape(l)
		total += rows * cols
		if total > MaxWeights {
			return parseErrorf(line, "more than %d weights", MaxWeights)
		}
	}
	return nil
}

// checkRow validates the field count of a weight row.
func checkRow(fields []string, cols, line, l, row int) error {
	if len(fields) != cols {
		return parseErrorf(line, "matrix %d row %d has %d columns, want %d", l, row, len(fields), cols)
	}
	return nil
}

// describeShape is used in premature-EOF messages.
func describeShape(rows, cols int) string {
	return fmt.Sprintf("%dx%d", rows, cols)
}
