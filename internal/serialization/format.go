package serialization

// Header keys and the marker line that starts the weight section.
const (
	keyNumLayers  = "num_layers"
	keyLayerSizes = "layer_sizes"
	weightsMarker = "w"
)

// Header is the key=value section preceding the weights.
type Header struct {
	NumLayers  int   // Number of layers including input and output
	LayerSizes []int // Non-bias units per layer
}

// matrixShape returns the rows and columns of weight matrix l.
func (h Header) matrixShape(l int) (rows, cols int) {
	return h.LayerSizes[l+1], h.LayerSizes[l] + 1
}
