// Package helix provides minimum-phase recursive filters on 1-D, 2-D, and
// 3-D arrays, generalized via filtering on a helix: multi-dimensional lags
// are unrolled onto a single causal ordering, so the ordinary causal
// recursion algorithms carry over unchanged from one dimension to three.
//
// A [Filter] is an immutable lag/coefficient table exposing four linear
// operators — [Filter.Apply], [Filter.ApplyTranspose], [Filter.ApplyInverse],
// and [Filter.ApplyInverseTranspose] — over [grid.Dense] arrays of any
// dimensionality up to the filter's own. Because the filter is minimum
// phase, the inverse operators are causal and stable, and ApplyInverse
// undoes Apply to floating-point tolerance.
//
// [Factor] and [Factor2] derive minimum-phase coefficients from a target
// autocorrelation by Wilson-Burg spectral factorization. Targets can be
// estimated from data with dsp/autocorr.
//
// # Usage
//
// Construct a filter from validated lags and coefficients, then apply it to
// caller-owned arrays:
//
//	f, err := helix.New([]int{0, 1}, []float64{1, -0.5})
//	y := grid.Zeros(n)
//	err = f.Apply(y, grid.FromSlice(x))
//
// Or derive one from an autocorrelation:
//
//	f, err := helix.Factor(r, []int{0, 1, 2}, helix.WithTolerance(1e-12))
package helix
