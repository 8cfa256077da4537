package helix

import (
	"errors"
	"fmt"
)

// Errors returned by filter construction, application, and factorization.
var (
	// ErrInvalidLags reports a lag/coefficient table that violates a
	// construction invariant. The wrapped message names the invariant and
	// the offending index.
	ErrInvalidLags = errors.New("helix: invalid lag table")

	// ErrMissingLags reports an application whose array dimensionality
	// exceeds the lag tables the filter was constructed with.
	ErrMissingLags = errors.New("helix: lags not specified for dimensionality")

	// ErrShapeMismatch reports incompatible array shapes or sizes.
	ErrShapeMismatch = errors.New("helix: shape mismatch")

	// ErrBadTarget reports an unusable autocorrelation target.
	ErrBadTarget = errors.New("helix: invalid autocorrelation target")

	// ErrNoConvergence reports that Wilson-Burg factorization hit its
	// iteration cap before the coefficients settled.
	ErrNoConvergence = errors.New("helix: factorization did not converge")
)

// Filter is an immutable minimum-phase filter on a helix.
//
// Each of the m coefficients is tied to an integer lag vector; index 0 is
// always the filter's own sample (zero lags), and every other lag vector
// points strictly into the causal past under the helix ordering. Construct
// with [New], [New2], or [New3]; the zero value is not usable.
type Filter struct {
	m    int
	ndim int

	// lags[d] is the lag table for dimension d+1, nil above ndim.
	// zero is an all-zero table substituted for dimensions beyond the
	// array being filtered.
	lags [3][]int
	zero []int

	mins [3]int
	maxs [3]int

	a   []float64
	a0  float64
	a0i float64
}

// New constructs a 1-D minimum-phase filter.
// lag1[0] must be 0 and every other lag must be positive.
func New(lag1 []int, a []float64) (*Filter, error) {
	if err := checkTable(lag1, nil, nil, a); err != nil {
		return nil, err
	}
	for j := 1; j < len(a); j++ {
		if lag1[j] <= 0 {
			return nil, fmt.Errorf("%w: lag1[%d] must be > 0, got %d", ErrInvalidLags, j, lag1[j])
		}
	}
	return newFilter(lag1, nil, nil, a), nil
}

// New2 constructs a 2-D minimum-phase filter.
// Lag vectors must be lexicographically causal with dimension 2 ranked
// first: lag2[j] must be non-negative, and where lag2[j] is 0, lag1[j]
// must be positive. lag1 may be negative where lag2 is positive.
func New2(lag1, lag2 []int, a []float64) (*Filter, error) {
	if err := checkTable(lag1, lag2, nil, a); err != nil {
		return nil, err
	}
	for j := 1; j < len(a); j++ {
		if lag2[j] < 0 {
			return nil, fmt.Errorf("%w: lag2[%d] must be >= 0, got %d", ErrInvalidLags, j, lag2[j])
		}
		if lag2[j] == 0 && lag1[j] <= 0 {
			return nil, fmt.Errorf("%w: lag1[%d] must be > 0 when lag2[%d] is 0, got %d",
				ErrInvalidLags, j, j, lag1[j])
		}
	}
	return newFilter(lag1, lag2, nil, a), nil
}

// New3 constructs a 3-D minimum-phase filter.
// Lag vectors must be lexicographically causal with dimension 3 ranked
// first, then dimension 2, then dimension 1.
func New3(lag1, lag2, lag3 []int, a []float64) (*Filter, error) {
	if err := checkTable(lag1, lag2, lag3, a); err != nil {
		return nil, err
	}
	for j := 1; j < len(a); j++ {
		if lag3[j] < 0 {
			return nil, fmt.Errorf("%w: lag3[%d] must be >= 0, got %d", ErrInvalidLags, j, lag3[j])
		}
		if lag3[j] != 0 {
			continue
		}
		if lag2[j] < 0 {
			return nil, fmt.Errorf("%w: lag2[%d] must be >= 0 when lag3[%d] is 0, got %d",
				ErrInvalidLags, j, j, lag2[j])
		}
		if lag2[j] == 0 && lag1[j] <= 0 {
			return nil, fmt.Errorf("%w: lag1[%d] must be > 0 when lag2[%d] and lag3[%d] are 0, got %d",
				ErrInvalidLags, j, j, j, lag1[j])
		}
	}
	return newFilter(lag1, lag2, lag3, a), nil
}

// checkTable validates the invariants shared by all dimensionalities:
// non-empty equal-length tables, zero leading lags, non-zero leading
// coefficient.
func checkTable(lag1, lag2, lag3 []int, a []float64) error {
	if len(lag1) == 0 {
		return fmt.Errorf("%w: empty lag table", ErrInvalidLags)
	}
	if len(lag1) != len(a) {
		return fmt.Errorf("%w: %d lags, %d coefficients", ErrInvalidLags, len(lag1), len(a))
	}
	if lag2 != nil && len(lag2) != len(a) {
		return fmt.Errorf("%w: %d lag2 entries, %d coefficients", ErrInvalidLags, len(lag2), len(a))
	}
	if lag3 != nil && len(lag3) != len(a) {
		return fmt.Errorf("%w: %d lag3 entries, %d coefficients", ErrInvalidLags, len(lag3), len(a))
	}
	if lag1[0] != 0 {
		return fmt.Errorf("%w: lag1[0] must be 0, got %d", ErrInvalidLags, lag1[0])
	}
	if lag2 != nil && lag2[0] != 0 {
		return fmt.Errorf("%w: lag2[0] must be 0, got %d", ErrInvalidLags, lag2[0])
	}
	if lag3 != nil && lag3[0] != 0 {
		return fmt.Errorf("%w: lag3[0] must be 0, got %d", ErrInvalidLags, lag3[0])
	}
	if a[0] == 0 {
		return fmt.Errorf("%w: a[0] must be non-zero", ErrInvalidLags)
	}
	return nil
}

// newFilter copies the validated tables and caches the per-dimension
// extrema used to delimit interior and boundary zones.
func newFilter(lag1, lag2, lag3 []int, a []float64) *Filter {
	f := &Filter{
		m:    len(a),
		ndim: 1,
		zero: make([]int, len(a)),
		a:    append([]float64(nil), a...),
		a0:   a[0],
		a0i:  1 / a[0],
	}
	f.lags[0] = append([]int(nil), lag1...)
	f.mins[0], f.maxs[0] = minMaxInts(lag1)
	if lag2 != nil {
		f.ndim = 2
		f.lags[1] = append([]int(nil), lag2...)
		f.mins[1], f.maxs[1] = minMaxInts(lag2)
	}
	if lag3 != nil {
		f.ndim = 3
		f.lags[2] = append([]int(nil), lag3...)
		f.mins[2], f.maxs[2] = minMaxInts(lag3)
	}
	return f
}

func minMaxInts(x []int) (min, max int) {
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

// Len returns the number of coefficient terms.
func (f *Filter) Len() int { return f.m }

// NDim returns the number of lag tables the filter carries (1, 2, or 3).
func (f *Filter) NDim() int { return f.ndim }

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	return append([]float64(nil), f.a...)
}

// Lags returns a copy of the lag table for dimension d (1, 2, or 3), or
// nil if the filter has no table for that dimension.
func (f *Filter) Lags(d int) []int {
	if d < 1 || d > f.ndim {
		return nil
	}
	return append([]int(nil), f.lags[d-1]...)
}
