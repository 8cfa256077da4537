package helix

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-helix/dsp/grid"
	"github.com/cwbudde/algo-helix/internal/testutil"
)

func mustNew(t *testing.T, lag1 []int, a []float64) *Filter {
	t.Helper()
	f, err := New(lag1, a)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func mustNew2(t *testing.T, lag1, lag2 []int, a []float64) *Filter {
	t.Helper()
	f, err := New2(lag1, lag2, a)
	if err != nil {
		t.Fatalf("New2: %v", err)
	}
	return f
}

func mustNew3(t *testing.T, lag1, lag2, lag3 []int, a []float64) *Filter {
	t.Helper()
	f, err := New3(lag1, lag2, lag3, a)
	if err != nil {
		t.Fatalf("New3: %v", err)
	}
	return f
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func TestApplyImpulse(t *testing.T) {
	f := mustNew(t, []int{0, 1}, []float64{1, -0.5})
	x := grid.FromSlice(testutil.Impulse(6, 0))
	y := grid.Zeros(6)
	if err := f.Apply(y, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y.Data(), []float64{1, -0.5, 0, 0, 0, 0}, 0)
}

func TestApplyInverseGeometric(t *testing.T) {
	// The all-pole recursion 1/(1 - 0.5 z^-1) turns an impulse into the
	// geometric sequence 0.5^n.
	f := mustNew(t, []int{0, 1}, []float64{1, -0.5})
	x := grid.FromSlice(testutil.Impulse(4, 0))
	y := grid.Zeros(4)
	if err := f.ApplyInverse(y, x); err != nil {
		t.Fatalf("ApplyInverse: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y.Data(), []float64{1, 0.5, 0.25, 0.125}, 1e-15)
}

func TestApplyInverseInPlace(t *testing.T) {
	f := mustNew(t, []int{0, 1}, []float64{1, -0.5})
	y := grid.FromSlice(testutil.Impulse(4, 0))
	if err := f.ApplyInverse(y, y); err != nil {
		t.Fatalf("ApplyInverse: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y.Data(), []float64{1, 0.5, 0.25, 0.125}, 1e-15)
}

func testFilters(t *testing.T) map[string]*Filter {
	return map[string]*Filter{
		"1d": mustNew(t, []int{0, 1, 3}, []float64{1, -0.5, 0.2}),
		"2d": mustNew2(t, []int{0, 1, -1}, []int{0, 0, 1}, []float64{1, -0.4, 0.2}),
		"3d": mustNew3(t, []int{0, 1, 0, -1}, []int{0, 0, 1, 0}, []int{0, 0, 0, 1},
			[]float64{1, -0.3, 0.15, 0.1}),
	}
}

func testArrays(seed int64) map[string]*grid.Dense {
	return map[string]*grid.Dense{
		"1d": testutil.RandomDense(seed, 1, 37, 1, 1),
		"2d": testutil.RandomDense(seed+100, 2, 13, 11, 1),
		"3d": testutil.RandomDense(seed+200, 3, 9, 7, 6),
	}
}

func TestInverseRoundTrip(t *testing.T) {
	filters := testFilters(t)
	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			x := testArrays(42)[name]
			y := x.Clone()
			y.Zero()
			z := x.Clone()
			z.Zero()
			if err := f.Apply(y, x); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if err := f.ApplyInverse(z, y); err != nil {
				t.Fatalf("ApplyInverse: %v", err)
			}
			testutil.RequireDenseNearlyEqual(t, z, x, 1e-12)
		})
	}
}

func TestTransposeInverseRoundTrip(t *testing.T) {
	filters := testFilters(t)
	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			x := testArrays(7)[name]
			y := x.Clone()
			y.Zero()
			z := x.Clone()
			z.Zero()
			if err := f.ApplyTranspose(y, x); err != nil {
				t.Fatalf("ApplyTranspose: %v", err)
			}
			if err := f.ApplyInverseTranspose(z, y); err != nil {
				t.Fatalf("ApplyInverseTranspose: %v", err)
			}
			testutil.RequireDenseNearlyEqual(t, z, x, 1e-12)
		})
	}
}

func TestAdjointIdentity(t *testing.T) {
	filters := testFilters(t)
	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				x := testArrays(seed)[name]
				z := testArrays(seed + 1000)[name]
				ax := x.Clone()
				atz := z.Clone()
				if err := f.Apply(ax, x); err != nil {
					t.Fatalf("Apply: %v", err)
				}
				if err := f.ApplyTranspose(atz, z); err != nil {
					t.Fatalf("ApplyTranspose: %v", err)
				}
				lhs := dot(ax.Data(), z.Data())
				rhs := dot(x.Data(), atz.Data())
				if diff := lhs - rhs; diff > 1e-10 || diff < -1e-10 {
					t.Errorf("seed %d: <Ax,z> = %v, <x,Atz> = %v", seed, lhs, rhs)
				}
			}
		})
	}
}

func TestInverseAdjointIdentity(t *testing.T) {
	filters := testFilters(t)
	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				x := testArrays(seed)[name]
				z := testArrays(seed + 2000)[name]
				ax := x.Clone()
				atz := z.Clone()
				if err := f.ApplyInverse(ax, x); err != nil {
					t.Fatalf("ApplyInverse: %v", err)
				}
				if err := f.ApplyInverseTranspose(atz, z); err != nil {
					t.Fatalf("ApplyInverseTranspose: %v", err)
				}
				lhs := dot(ax.Data(), z.Data())
				rhs := dot(x.Data(), atz.Data())
				if diff := lhs - rhs; diff > 1e-10 || diff < -1e-10 {
					t.Errorf("seed %d: <A'x,z> = %v, <x,A'tz> = %v", seed, lhs, rhs)
				}
			}
		})
	}
}

func TestLowerDimensionalApplication(t *testing.T) {
	// A filter with higher-dimensional lag tables applied to a 1-D array
	// uses lag1 only and must match the plain 1-D filter.
	f1 := mustNew(t, []int{0, 1}, []float64{1, -0.5})
	f2 := mustNew2(t, []int{0, 1}, []int{0, 0}, []float64{1, -0.5})
	x := grid.FromSlice(testutil.DeterministicNoise(3, 1, 25))
	y1 := grid.Zeros(25)
	y2 := grid.Zeros(25)
	if err := f1.Apply(y1, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := f2.Apply(y2, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y2.Data(), y1.Data(), 0)
}

func TestApplyErrors(t *testing.T) {
	f := mustNew(t, []int{0, 1}, []float64{1, -0.5})

	if err := f.Apply(grid.Zeros2(4, 4), grid.Zeros2(4, 4)); !errors.Is(err, ErrMissingLags) {
		t.Errorf("expected ErrMissingLags, got %v", err)
	}
	if err := f.Apply(grid.Zeros(4), grid.Zeros(5)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if err := f.Apply(grid.Zeros(4), grid.Zeros2(2, 2)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestDeterminism(t *testing.T) {
	f := mustNew2(t, []int{0, 1, -1}, []int{0, 0, 1}, []float64{1, -0.4, 0.2})
	x := testutil.RandomDense(11, 2, 17, 12, 1)
	y1 := x.Clone()
	y2 := x.Clone()
	if err := f.Apply(y1, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := f.Apply(y2, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i, v := range y1.Data() {
		if y2.Data()[i] != v {
			t.Fatalf("index %d: outputs differ across identical calls", i)
		}
	}
}

func TestSmallArraySafety(t *testing.T) {
	// Arrays smaller than the lag span have no interior zone; every
	// position takes the checked path.
	f := mustNew(t, []int{0, 5}, []float64{1, -0.5})
	x := grid.FromSlice(testutil.Impulse(3, 0))
	y := grid.Zeros(3)
	if err := f.Apply(y, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y.Data(), []float64{1, 0, 0}, 0)

	f2 := mustNew2(t, []int{0, 1, -1}, []int{0, 0, 1}, []float64{1, -0.4, 0.2})
	x2 := testutil.RandomDense(5, 2, 2, 2, 1)
	y2 := x2.Clone()
	z2 := x2.Clone()
	if err := f2.Apply(y2, x2); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := f2.ApplyInverse(z2, y2); err != nil {
		t.Fatalf("ApplyInverse: %v", err)
	}
	testutil.RequireDenseNearlyEqual(t, z2, x2, 1e-12)
}
