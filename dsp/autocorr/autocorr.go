// Package autocorr estimates autocorrelation targets for Wilson-Burg
// spectral factorization (dsp/filter/helix).
//
// Estimates are biased (divided by the full sample count), which keeps the
// implied spectrum non-negative — the property the factorization iteration
// relies on. Results are exactly symmetric about their midpoint: each lag
// is computed once and mirrored.
package autocorr

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-helix/dsp/grid"
)

// Errors returned by estimation functions.
var (
	ErrEmptyInput = errors.New("autocorr: empty input")
	ErrBadLag     = errors.New("autocorr: invalid max lag")
	ErrBadShape   = errors.New("autocorr: invalid input shape")
)

// Estimate computes the biased sample autocorrelation of x for lags
// -maxLag..maxLag. The result has length 2*maxLag+1 with zero lag at index
// maxLag. maxLag must satisfy 0 <= maxLag < len(x).
//
// The estimate is computed in the frequency domain: real FFT of the
// zero-padded signal, power spectrum, inverse transform.
func Estimate(x []float64, maxLag int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if maxLag < 0 || maxLag >= len(x) {
		return nil, fmt.Errorf("%w: %d for %d samples", ErrBadLag, maxLag, len(x))
	}

	// Pad past len(x)+maxLag so circular wraparound cannot reach the lags
	// we keep.
	fftSize := nextPowerOf2(len(x) + maxLag)
	fft := fourier.NewFFT(fftSize)
	padded := make([]float64, fftSize)
	copy(padded, x)

	coeff := fft.Coefficients(nil, padded)
	for i, c := range coeff {
		coeff[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	seq := fft.Sequence(nil, coeff)

	// The gonum transforms are unnormalized: the round trip gains a factor
	// of fftSize. The additional 1/len(x) is the biased estimate.
	scale := 1 / (float64(fftSize) * float64(len(x)))
	out := make([]float64, 2*maxLag+1)
	out[maxLag] = seq[0] * scale
	for k := 1; k <= maxLag; k++ {
		v := seq[k] * scale
		out[maxLag+k] = v
		out[maxLag-k] = v
	}
	return out, nil
}

// EstimateNormalized computes the autocorrelation of x normalized so the
// zero-lag value is 1.
func EstimateNormalized(x []float64, maxLag int) ([]float64, error) {
	out, err := Estimate(x, maxLag)
	if err != nil {
		return nil, err
	}
	zeroLag := out[maxLag]
	if zeroLag == 0 {
		return out, nil
	}
	for i := range out {
		out[i] /= zeroLag
	}
	return out, nil
}

// Windowed multiplies x by the window w before estimation, reducing the
// leakage of strong low-frequency content into the short-lag estimates.
// x and w must have the same length.
func Windowed(x, w []float64, maxLag int) ([]float64, error) {
	if len(x) != len(w) {
		return nil, fmt.Errorf("%w: %d samples, %d window coefficients", ErrBadShape, len(x), len(w))
	}
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	buf := make([]float64, len(x))
	vecmath.MulBlock(buf, x, w)
	return Estimate(buf, maxLag)
}

// Hann returns an n-point Hann window.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// Estimate2 computes the biased 2-D sample autocorrelation of x for lags
// up to (maxLag1, maxLag2) per dimension, by direct lag sums. The result
// has shape (2*maxLag1+1, 2*maxLag2+1) with zero lag at the center.
//
// Direct summation is used because factorization targets are only a few
// lags wide; there is no 2-D transform in this module's stack.
func Estimate2(x *grid.Dense, maxLag1, maxLag2 int) (*grid.Dense, error) {
	if x == nil || x.Len() == 0 {
		return nil, ErrEmptyInput
	}
	if x.NDim() != 2 {
		return nil, fmt.Errorf("%w: 2-D input required, got %d-D", ErrBadShape, x.NDim())
	}
	n1, n2, _ := x.Dims()
	if maxLag1 < 0 || maxLag1 >= n1 || maxLag2 < 0 || maxLag2 >= n2 {
		return nil, fmt.Errorf("%w: (%d, %d) for shape (%d, %d)", ErrBadLag, maxLag1, maxLag2, n1, n2)
	}

	out := grid.Zeros2(2*maxLag1+1, 2*maxLag2+1)
	norm := 1 / float64(n1*n2)
	for l2 := 0; l2 <= maxLag2; l2++ {
		l1min := -maxLag1
		if l2 == 0 {
			// The opposite quadrant is filled by mirroring.
			l1min = 0
		}
		for l1 := l1min; l1 <= maxLag1; l1++ {
			lo1, hi1 := 0, n1
			if l1 < 0 {
				lo1 = -l1
			} else {
				hi1 = n1 - l1
			}
			var sum float64
			for i2 := 0; i2 < n2-l2; i2++ {
				for i1 := lo1; i1 < hi1; i1++ {
					sum += x.At2(i1, i2) * x.At2(i1+l1, i2+l2)
				}
			}
			v := sum * norm
			out.Set2(maxLag1+l1, maxLag2+l2, v)
			out.Set2(maxLag1-l1, maxLag2-l2, v)
		}
	}
	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
