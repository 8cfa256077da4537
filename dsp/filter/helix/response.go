package helix

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// AmplitudeResponse returns |A(ω)| of a 1-D filter on an n-point DFT grid.
// n must be a power of two no smaller than the largest lag plus one.
//
// For a filter produced by [Factor], the squared response approximates the
// spectrum of the target autocorrelation, which makes this a convenient
// factorization-quality check.
func (f *Filter) AmplitudeResponse(n int) ([]float64, error) {
	spec, err := f.spectrum(n)
	if err != nil {
		return nil, err
	}
	re, im := unpack(spec)
	out := make([]float64, n)
	vecmath.Magnitude(out, re, im)
	return out, nil
}

// PowerSpectrum returns |A(ω)|² of a 1-D filter on an n-point DFT grid.
// n must be a power of two no smaller than the largest lag plus one.
func (f *Filter) PowerSpectrum(n int) ([]float64, error) {
	spec, err := f.spectrum(n)
	if err != nil {
		return nil, err
	}
	re, im := unpack(spec)
	out := make([]float64, n)
	vecmath.Power(out, re, im)
	return out, nil
}

// spectrum embeds the coefficients as an impulse response and transforms it.
func (f *Filter) spectrum(n int) ([]complex128, error) {
	if f.ndim != 1 {
		return nil, fmt.Errorf("%w: spectral response requires a 1-D filter, got %d-D", ErrShapeMismatch, f.ndim)
	}
	if n&(n-1) != 0 || n < f.maxs[0]+1 {
		return nil, fmt.Errorf("%w: n must be a power of two >= %d, got %d", ErrShapeMismatch, f.maxs[0]+1, n)
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("helix: failed to create FFT plan: %w", err)
	}
	buf := make([]complex128, n)
	for j, lag := range f.lags[0] {
		buf[lag] += complex(f.a[j], 0)
	}
	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("helix: forward FFT failed: %w", err)
	}
	return buf, nil
}

func unpack(spec []complex128) (re, im []float64) {
	re = make([]float64, len(spec))
	im = make([]float64, len(spec))
	for i, c := range spec {
		re[i], im[i] = real(c), imag(c)
	}
	return re, im
}
