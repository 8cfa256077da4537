package helix

import (
	"fmt"

	"github.com/cwbudde/algo-helix/dsp/grid"
)

// The four operators share one N-D engine. Per call it derives, from the
// cached lag extrema, the interior box of positions whose every filter term
// is provably in bounds; inside the box the inner loop reads neighbors
// through precomputed flat helix offsets with no per-term conditional, and
// only the boundary zones pay a per-term bounds check. Arrays of lower
// dimensionality than the filter use the leading lag tables and ignore the
// rest, so the same engine serves 1-D, 2-D, and 3-D.

// Apply computes dst = A x: for every position p,
//
//	dst[p] = a[0]*src[p] + sum_{j>=1} a[j]*src[p - lag[j]]
//
// with out-of-bounds terms dropped (src is treated as zero outside its
// extent). dst and src must share a shape and must not alias; the array
// dimensionality must not exceed the filter's.
func (f *Filter) Apply(dst, src *grid.Dense) error {
	n1, n2, n3, ndim, err := f.checkOp(dst, src)
	if err != nil {
		return err
	}
	f.convolve(dst.Data(), src.Data(), n1, n2, n3, ndim, false)
	return nil
}

// ApplyTranspose computes dst = Aᵀ x, the adjoint of [Filter.Apply]: the
// same coefficients read in the anti-causal direction,
//
//	dst[p] = a[0]*src[p] + sum_{j>=1} a[j]*src[p + lag[j]]
//
// For compatible shapes, ⟨Apply(x), z⟩ == ⟨x, ApplyTranspose(z)⟩.
// dst and src must share a shape and must not alias.
func (f *Filter) ApplyTranspose(dst, src *grid.Dense) error {
	n1, n2, n3, ndim, err := f.checkOp(dst, src)
	if err != nil {
		return err
	}
	f.convolve(dst.Data(), src.Data(), n1, n2, n3, ndim, true)
	return nil
}

// ApplyInverse computes dst = A⁻¹ x by causal recursive deconvolution,
//
//	dst[p] = (src[p] - sum_{j>=1} a[j]*dst[p - lag[j]]) / a[0]
//
// writing positions in increasing helix order; each output depends on
// previously written outputs. ApplyInverse(Apply(x)) recovers x to
// floating-point tolerance. dst and src may be the same array.
func (f *Filter) ApplyInverse(dst, src *grid.Dense) error {
	n1, n2, n3, ndim, err := f.checkOp(dst, src)
	if err != nil {
		return err
	}
	f.deconvolve(dst.Data(), src.Data(), n1, n2, n3, ndim, false)
	return nil
}

// ApplyInverseTranspose computes dst = A⁻ᵀ x, the adjoint of
// [Filter.ApplyInverse]: anti-causal recursive deconvolution in decreasing
// helix order. dst and src may be the same array.
func (f *Filter) ApplyInverseTranspose(dst, src *grid.Dense) error {
	n1, n2, n3, ndim, err := f.checkOp(dst, src)
	if err != nil {
		return err
	}
	f.deconvolve(dst.Data(), src.Data(), n1, n2, n3, ndim, true)
	return nil
}

func (f *Filter) checkOp(dst, src *grid.Dense) (n1, n2, n3, ndim int, err error) {
	if !dst.SameShape(src) {
		d1, d2, d3 := dst.Dims()
		s1, s2, s3 := src.Dims()
		return 0, 0, 0, 0, fmt.Errorf("%w: dst (%d, %d, %d), src (%d, %d, %d)",
			ErrShapeMismatch, d1, d2, d3, s1, s2, s3)
	}
	ndim = dst.NDim()
	if ndim > f.ndim {
		return 0, 0, 0, 0, fmt.Errorf("%w: %d-D array, filter has %d lag table(s)",
			ErrMissingLags, ndim, f.ndim)
	}
	n1, n2, n3 = dst.Dims()
	return n1, n2, n3, ndim, nil
}

// tables returns the lag tables and extrema in effect for an array of the
// given dimensionality. Dimensions beyond it get the all-zero table.
func (f *Filter) tables(ndim int) (l [3][]int, mn, mx [3]int) {
	for d := 0; d < 3; d++ {
		if d < ndim {
			l[d], mn[d], mx[d] = f.lags[d], f.mins[d], f.maxs[d]
		} else {
			l[d] = f.zero
		}
	}
	return l, mn, mx
}

// span returns the interior range [lo, hi) of dimension size n for the
// given lag extrema: positions whose neighbor index along this dimension
// is in bounds for every term. Causal reads are at i-lag, adjoint reads
// at i+lag. hi < lo means the dimension has no interior.
func span(n, minLag, maxLag int, adjoint bool) (lo, hi int) {
	if adjoint {
		minLag, maxLag = -maxLag, -minLag
	}
	lo = maxLag
	if lo < 0 {
		lo = 0
	}
	hi = n + minLag
	if hi > n {
		hi = n
	}
	return lo, hi
}

// offsets precomputes the flat helix offset of every term for row length
// n1 and plane size n1*n2.
func offsets(l [3][]int, m, n1, n2 int) []int {
	off := make([]int, m)
	for j := 1; j < m; j++ {
		off[j] = l[0][j] + n1*(l[1][j]+n2*l[2][j])
	}
	return off
}

func (f *Filter) convolve(dst, src []float64, n1, n2, n3, ndim int, adjoint bool) {
	l, mn, mx := f.tables(ndim)
	i1lo, i1hi := span(n1, mn[0], mx[0], adjoint)
	i2lo, i2hi := span(n2, mn[1], mx[1], adjoint)
	i3lo, i3hi := span(n3, mn[2], mx[2], adjoint)
	interior := i1lo <= i1hi && i2lo <= i2hi && i3lo <= i3hi
	off := offsets(l, f.m, n1, n2)
	a, a0, m := f.a, f.a0, f.m

	for i3 := 0; i3 < n3; i3++ {
		for i2 := 0; i2 < n2; i2++ {
			base := n1 * (i2 + n2*i3)
			if !interior || i2 < i2lo || i2 >= i2hi || i3 < i3lo || i3 >= i3hi {
				f.convRow(dst, src, l, i2, i3, 0, n1, n1, n2, n3, adjoint)
				continue
			}
			f.convRow(dst, src, l, i2, i3, 0, i1lo, n1, n2, n3, adjoint)
			if adjoint {
				for i1 := i1lo; i1 < i1hi; i1++ {
					p := base + i1
					v := a0 * src[p]
					for j := 1; j < m; j++ {
						v += a[j] * src[p+off[j]]
					}
					dst[p] = v
				}
			} else {
				for i1 := i1lo; i1 < i1hi; i1++ {
					p := base + i1
					v := a0 * src[p]
					for j := 1; j < m; j++ {
						v += a[j] * src[p-off[j]]
					}
					dst[p] = v
				}
			}
			f.convRow(dst, src, l, i2, i3, i1hi, n1, n1, n2, n3, adjoint)
		}
	}
}

// convRow handles one boundary span [lo, hi) of a row with per-term bounds
// checks; out-of-bounds neighbors contribute nothing.
func (f *Filter) convRow(dst, src []float64, l [3][]int, i2, i3, lo, hi, n1, n2, n3 int, adjoint bool) {
	base := n1 * (i2 + n2*i3)
	for i1 := lo; i1 < hi; i1++ {
		v := f.a0 * src[base+i1]
		for j := 1; j < f.m; j++ {
			var k1, k2, k3 int
			if adjoint {
				k1, k2, k3 = i1+l[0][j], i2+l[1][j], i3+l[2][j]
			} else {
				k1, k2, k3 = i1-l[0][j], i2-l[1][j], i3-l[2][j]
			}
			if 0 <= k1 && k1 < n1 && 0 <= k2 && k2 < n2 && 0 <= k3 && k3 < n3 {
				v += f.a[j] * src[k1+n1*(k2+n2*k3)]
			}
		}
		dst[base+i1] = v
	}
}

// deconvolve runs the recursive inverse. Unlike convolve it reads dst, so
// traversal order is load-bearing: strictly increasing helix order for the
// causal inverse, strictly decreasing for the adjoint.
func (f *Filter) deconvolve(dst, src []float64, n1, n2, n3, ndim int, adjoint bool) {
	l, mn, mx := f.tables(ndim)
	i1lo, i1hi := span(n1, mn[0], mx[0], adjoint)
	i2lo, i2hi := span(n2, mn[1], mx[1], adjoint)
	i3lo, i3hi := span(n3, mn[2], mx[2], adjoint)
	interior := i1lo <= i1hi && i2lo <= i2hi && i3lo <= i3hi
	off := offsets(l, f.m, n1, n2)
	a, a0i, m := f.a, f.a0i, f.m

	if !adjoint {
		for i3 := 0; i3 < n3; i3++ {
			for i2 := 0; i2 < n2; i2++ {
				base := n1 * (i2 + n2*i3)
				if !interior || i2 < i2lo || i2 >= i2hi || i3 < i3lo || i3 >= i3hi {
					f.deconvRowFwd(dst, src, l, i2, i3, 0, n1, n1, n2, n3)
					continue
				}
				f.deconvRowFwd(dst, src, l, i2, i3, 0, i1lo, n1, n2, n3)
				for i1 := i1lo; i1 < i1hi; i1++ {
					p := base + i1
					v := src[p]
					for j := 1; j < m; j++ {
						v -= a[j] * dst[p-off[j]]
					}
					dst[p] = a0i * v
				}
				f.deconvRowFwd(dst, src, l, i2, i3, i1hi, n1, n1, n2, n3)
			}
		}
		return
	}
	for i3 := n3 - 1; i3 >= 0; i3-- {
		for i2 := n2 - 1; i2 >= 0; i2-- {
			base := n1 * (i2 + n2*i3)
			if !interior || i2 < i2lo || i2 >= i2hi || i3 < i3lo || i3 >= i3hi {
				f.deconvRowAdj(dst, src, l, i2, i3, 0, n1, n1, n2, n3)
				continue
			}
			f.deconvRowAdj(dst, src, l, i2, i3, i1hi, n1, n1, n2, n3)
			for i1 := i1hi - 1; i1 >= i1lo; i1-- {
				p := base + i1
				v := src[p]
				for j := 1; j < m; j++ {
					v -= a[j] * dst[p+off[j]]
				}
				dst[p] = a0i * v
			}
			f.deconvRowAdj(dst, src, l, i2, i3, 0, i1lo, n1, n2, n3)
		}
	}
}

// deconvRowFwd handles one boundary span [lo, hi) of the causal inverse,
// ascending.
func (f *Filter) deconvRowFwd(dst, src []float64, l [3][]int, i2, i3, lo, hi, n1, n2, n3 int) {
	base := n1 * (i2 + n2*i3)
	for i1 := lo; i1 < hi; i1++ {
		v := src[base+i1]
		for j := 1; j < f.m; j++ {
			k1 := i1 - l[0][j]
			k2 := i2 - l[1][j]
			k3 := i3 - l[2][j]
			if 0 <= k1 && k1 < n1 && 0 <= k2 && k2 < n2 && 0 <= k3 && k3 < n3 {
				v -= f.a[j] * dst[k1+n1*(k2+n2*k3)]
			}
		}
		dst[base+i1] = f.a0i * v
	}
}

// deconvRowAdj handles one boundary span [lo, hi) of the anti-causal
// inverse, descending.
func (f *Filter) deconvRowAdj(dst, src []float64, l [3][]int, i2, i3, lo, hi, n1, n2, n3 int) {
	base := n1 * (i2 + n2*i3)
	for i1 := hi - 1; i1 >= lo; i1-- {
		v := src[base+i1]
		for j := 1; j < f.m; j++ {
			k1 := i1 + l[0][j]
			k2 := i2 + l[1][j]
			k3 := i3 + l[2][j]
			if 0 <= k1 && k1 < n1 && 0 <= k2 && k2 < n2 && 0 <= k3 && k3 < n3 {
				v -= f.a[j] * dst[k1+n1*(k2+n2*k3)]
			}
		}
		dst[base+i1] = f.a0i * v
	}
}
