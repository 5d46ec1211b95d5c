package nn

import (
	"math"
	"math/rand"
)

// RandomInitialize overwrites every weight with a value drawn uniformly from
// [-eps, eps), eps = sqrt(6)/sqrt(units[l]+units[l+1]) (Xavier/Glorot bound;
// the bias column does not count towards fan-in).
//
// The generator is consumed layer by layer in row-major order, so a given
// seed always yields the same network.
func (n *Network) RandomInitialize(rng *rand.Rand) {
	for _, m := range n.w {
		eps := xavierBound(m.Cols()-1, m.Rows())
		data := m.RawData()
		for i := range data {
			data[i] = rng.Float64()*2*eps - eps
		}
	}
}

func xavierBound(fanIn, fanOut int) float64 {
	return math.Sqrt(6) / math.Sqrt(float64(fanIn+fanOut))
}
