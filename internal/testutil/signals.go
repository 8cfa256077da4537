package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-helix/dsp/grid"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// RandomDense generates a seeded random array of the given shape.
// Dimensions beyond ndim must be passed as 1.
func RandomDense(seed int64, ndim, n1, n2, n3 int) *grid.Dense {
	var d *grid.Dense
	switch ndim {
	case 2:
		d = grid.Zeros2(n1, n2)
	case 3:
		d = grid.Zeros3(n1, n2, n3)
	default:
		d = grid.Zeros(n1)
	}
	rng := rand.New(rand.NewSource(seed))
	data := d.Data()
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return d
}
