package helix

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-helix/dsp/grid"
)

// padFactor scales the lag span into the padding added around the target
// autocorrelation, suppressing wraparound and edge error in the iteration.
const padFactor = 20

// Options configure Wilson-Burg factorization.
type Options struct {
	// Tolerance is the largest absolute coefficient change still counted
	// as converged. 0 demands an exact fixed point.
	Tolerance float64

	// MaxIterations caps the iteration count; exceeding it fails with
	// ErrNoConvergence.
	MaxIterations int
}

// Option mutates factorization Options.
type Option func(*Options)

// DefaultOptions returns the factorization defaults: an exact fixed point
// within 1000 iterations.
func DefaultOptions() Options {
	return Options{Tolerance: 0, MaxIterations: 1000}
}

// WithTolerance sets the convergence tolerance. Negative values are ignored.
func WithTolerance(eps float64) Option {
	return func(o *Options) {
		if eps >= 0 {
			o.Tolerance = eps
		}
	}
}

// WithMaxIterations sets the iteration cap. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.MaxIterations = n
		}
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Factor computes a 1-D minimum-phase filter over the given lag table whose
// autocorrelation approximates r, by Wilson-Burg spectral factorization.
//
// r must be symmetric about its midpoint (see dsp/autocorr for estimating
// one from data) and must describe a valid spectrum (positive on the unit
// circle); otherwise the iteration may fail to converge.
func Factor(r []float64, lag1 []int, opts ...Option) (*Filter, error) {
	if len(r) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadTarget)
	}
	a := make([]float64, len(lag1))
	a[0] = 1
	f, err := New(lag1, a)
	if err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)

	mn1, mx1 := grid.MinMax(lag1)
	n1 := len(r) + padFactor*(mx1-mn1)
	k1 := (n1 - 1) / 2
	s := grid.Zeros(n1)
	t := grid.Zeros(n1)
	u := grid.Zeros(n1)
	if err := grid.CopyCentered(s, grid.FromSlice(r)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTarget, err)
	}

	for it := 0; it < cfg.MaxIterations; it++ {
		if err := f.ApplyInverse(t, s); err != nil {
			return nil, err
		}
		if err := f.ApplyInverseTranspose(u, t); err != nil {
			return nil, err
		}
		// Causal symmetrization: keep the causal half of the two-sided
		// iterate, splitting the zero-lag term evenly.
		ud := u.Data()
		ud[k1]++
		for i1 := 0; i1 < k1; i1++ {
			ud[i1] = 0
		}
		ud[k1] *= 0.5
		if err := f.Apply(t, u); err != nil {
			return nil, err
		}
		td := t.Data()
		var delta float64
		for j, lag := range lag1 {
			j1 := k1 + lag
			if j1 < 0 || j1 >= n1 {
				continue
			}
			if d := math.Abs(td[j1] - a[j]); d > delta {
				delta = d
			}
			a[j] = td[j1]
		}
		if f, err = New(lag1, a); err != nil {
			return nil, fmt.Errorf("helix: factorization produced an invalid filter: %w", err)
		}
		if delta <= cfg.Tolerance {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w after %d iterations", ErrNoConvergence, cfg.MaxIterations)
}

// Factor2 computes a 2-D minimum-phase filter over the given lag tables
// whose autocorrelation approximates the 2-D target r, by Wilson-Burg
// spectral factorization. r must be 2-D and symmetric about its center.
//
// No 3-D variant is provided: the reference symmetrization is only defined
// for one and two dimensions.
func Factor2(r *grid.Dense, lag1, lag2 []int, opts ...Option) (*Filter, error) {
	if r == nil || r.Len() == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadTarget)
	}
	if r.NDim() != 2 {
		return nil, fmt.Errorf("%w: 2-D target required, got %d-D", ErrBadTarget, r.NDim())
	}
	a := make([]float64, len(lag1))
	a[0] = 1
	f, err := New2(lag1, lag2, a)
	if err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)

	mn1, mx1 := grid.MinMax(lag1)
	mn2, mx2 := grid.MinMax(lag2)
	rn1, rn2, _ := r.Dims()
	n1 := rn1 + padFactor*(mx1-mn1)
	n2 := rn2 + padFactor*(mx2-mn2)
	k1 := (n1 - 1) / 2
	k2 := (n2 - 1) / 2
	s := grid.Zeros2(n1, n2)
	t := grid.Zeros2(n1, n2)
	u := grid.Zeros2(n1, n2)
	if err := grid.CopyCentered(s, r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTarget, err)
	}

	for it := 0; it < cfg.MaxIterations; it++ {
		if err := f.ApplyInverse(t, s); err != nil {
			return nil, err
		}
		if err := f.ApplyInverseTranspose(u, t); err != nil {
			return nil, err
		}
		// Causal symmetrization on the helix: zero every row below the
		// center row and the left half of the center row.
		ud := u.Data()
		c := k1 + n1*k2
		ud[c]++
		ud[c] *= 0.5
		for i := 0; i < n1*k2; i++ {
			ud[i] = 0
		}
		for i1 := 0; i1 < k1; i1++ {
			ud[i1+n1*k2] = 0
		}
		if err := f.Apply(t, u); err != nil {
			return nil, err
		}
		td := t.Data()
		var delta float64
		for j := range lag1 {
			j1 := k1 + lag1[j]
			j2 := k2 + lag2[j]
			if j1 < 0 || j1 >= n1 || j2 < 0 || j2 >= n2 {
				continue
			}
			v := td[j1+n1*j2]
			if d := math.Abs(v - a[j]); d > delta {
				delta = d
			}
			a[j] = v
		}
		if f, err = New2(lag1, lag2, a); err != nil {
			return nil, fmt.Errorf("helix: factorization produced an invalid filter: %w", err)
		}
		if delta <= cfg.Tolerance {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w after %d iterations", ErrNoConvergence, cfg.MaxIterations)
}
