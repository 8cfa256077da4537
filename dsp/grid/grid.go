// Package grid provides dense 1-D, 2-D, and 3-D float64 arrays backed by a
// single flat slice, plus the small array utilities the helix filter core
// consumes (zero-filled allocation, centered copy, integer extrema).
//
// A [Dense] stores its samples in helix order: dimension 1 varies fastest,
// so element (i1, i2, i3) lives at flat index i1 + n1*(i2 + n2*i3). This is
// the ordering the recursive filter operators in dsp/filter/helix traverse.
package grid

import (
	"errors"
	"fmt"
)

// Errors returned by shape-checked operations.
var (
	ErrBadShape      = errors.New("grid: invalid shape")
	ErrShapeMismatch = errors.New("grid: shape mismatch")
)

// Dense is a dense array of 1, 2, or 3 dimensions with a flat backing slice.
//
// The zero value is not usable; construct with [Zeros], [Zeros2], [Zeros3]
// or the FromSlice variants.
type Dense struct {
	data []float64
	n1   int
	n2   int
	n3   int
	ndim int
}

// Zeros allocates a zero-filled 1-D array of length n1. n1 must be >= 1.
func Zeros(n1 int) *Dense {
	return &Dense{data: make([]float64, n1), n1: n1, n2: 1, n3: 1, ndim: 1}
}

// Zeros2 allocates a zero-filled 2-D array of shape (n1, n2).
// Both dimensions must be >= 1.
func Zeros2(n1, n2 int) *Dense {
	return &Dense{data: make([]float64, n1*n2), n1: n1, n2: n2, n3: 1, ndim: 2}
}

// Zeros3 allocates a zero-filled 3-D array of shape (n1, n2, n3).
// All dimensions must be >= 1.
func Zeros3(n1, n2, n3 int) *Dense {
	return &Dense{data: make([]float64, n1*n2*n3), n1: n1, n2: n2, n3: n3, ndim: 3}
}

// FromSlice wraps x as a 1-D array without copying.
func FromSlice(x []float64) *Dense {
	return &Dense{data: x, n1: len(x), n2: 1, n3: 1, ndim: 1}
}

// FromSlice2 wraps x as a 2-D array of shape (n1, n2) without copying.
// len(x) must equal n1*n2.
func FromSlice2(x []float64, n1, n2 int) (*Dense, error) {
	if n1 < 1 || n2 < 1 {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrBadShape, n1, n2)
	}
	if len(x) != n1*n2 {
		return nil, fmt.Errorf("%w: len %d != %d*%d", ErrBadShape, len(x), n1, n2)
	}
	return &Dense{data: x, n1: n1, n2: n2, n3: 1, ndim: 2}, nil
}

// FromSlice3 wraps x as a 3-D array of shape (n1, n2, n3) without copying.
// len(x) must equal n1*n2*n3.
func FromSlice3(x []float64, n1, n2, n3 int) (*Dense, error) {
	if n1 < 1 || n2 < 1 || n3 < 1 {
		return nil, fmt.Errorf("%w: (%d, %d, %d)", ErrBadShape, n1, n2, n3)
	}
	if len(x) != n1*n2*n3 {
		return nil, fmt.Errorf("%w: len %d != %d*%d*%d", ErrBadShape, len(x), n1, n2, n3)
	}
	return &Dense{data: x, n1: n1, n2: n2, n3: n3, ndim: 3}, nil
}

// NDim returns the declared dimensionality (1, 2, or 3).
func (d *Dense) NDim() int { return d.ndim }

// Dims returns the per-dimension sizes. Sizes beyond NDim are 1.
func (d *Dense) Dims() (n1, n2, n3 int) { return d.n1, d.n2, d.n3 }

// Len returns the total number of elements.
func (d *Dense) Len() int { return len(d.data) }

// Data returns the flat backing slice. Mutations are visible to the array.
func (d *Dense) Data() []float64 { return d.data }

// At returns element i1 of a 1-D array.
func (d *Dense) At(i1 int) float64 { return d.data[i1] }

// At2 returns element (i1, i2).
func (d *Dense) At2(i1, i2 int) float64 { return d.data[i1+d.n1*i2] }

// At3 returns element (i1, i2, i3).
func (d *Dense) At3(i1, i2, i3 int) float64 { return d.data[i1+d.n1*(i2+d.n2*i3)] }

// Set assigns element i1 of a 1-D array.
func (d *Dense) Set(i1 int, v float64) { d.data[i1] = v }

// Set2 assigns element (i1, i2).
func (d *Dense) Set2(i1, i2 int, v float64) { d.data[i1+d.n1*i2] = v }

// Set3 assigns element (i1, i2, i3).
func (d *Dense) Set3(i1, i2, i3 int, v float64) { d.data[i1+d.n1*(i2+d.n2*i3)] = v }

// Zero sets all elements to 0.
func (d *Dense) Zero() {
	for i := range d.data {
		d.data[i] = 0
	}
}

// Clone returns a deep copy with the same shape.
func (d *Dense) Clone() *Dense {
	c := *d
	c.data = make([]float64, len(d.data))
	copy(c.data, d.data)
	return &c
}

// SameShape reports whether d and o have identical dimensionality and sizes.
func (d *Dense) SameShape(o *Dense) bool {
	return d.ndim == o.ndim && d.n1 == o.n1 && d.n2 == o.n2 && d.n3 == o.n3
}

// CopyCentered copies src into dst so that the midpoints (n-1)/2 of every
// dimension coincide. dst elements outside the copied block are untouched.
// Fails if the dimensionalities differ or src exceeds dst in any dimension.
func CopyCentered(dst, src *Dense) error {
	if dst.ndim != src.ndim {
		return fmt.Errorf("%w: %d-D dst, %d-D src", ErrShapeMismatch, dst.ndim, src.ndim)
	}
	if src.n1 > dst.n1 || src.n2 > dst.n2 || src.n3 > dst.n3 {
		return fmt.Errorf("%w: src (%d, %d, %d) exceeds dst (%d, %d, %d)",
			ErrShapeMismatch, src.n1, src.n2, src.n3, dst.n1, dst.n2, dst.n3)
	}
	o1 := (dst.n1-1)/2 - (src.n1-1)/2
	o2 := (dst.n2-1)/2 - (src.n2-1)/2
	o3 := (dst.n3-1)/2 - (src.n3-1)/2
	for i3 := 0; i3 < src.n3; i3++ {
		for i2 := 0; i2 < src.n2; i2++ {
			srow := src.n1 * (i2 + src.n2*i3)
			drow := o1 + dst.n1*(i2+o2+dst.n2*(i3+o3))
			copy(dst.data[drow:drow+src.n1], src.data[srow:srow+src.n1])
		}
	}
	return nil
}

// MinMax returns the minimum and maximum of x. x must be non-empty.
func MinMax(x []int) (min, max int) {
	min, max = x[0], x[0]
	for _, v := range x[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// EnsureLen returns a slice with the requested length, reusing buf capacity
// if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// ZeroSlice sets all values in buf to 0.
func ZeroSlice(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}
