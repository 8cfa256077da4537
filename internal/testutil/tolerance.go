package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-helix/dsp/grid"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireDenseNearlyEqual fails t if got and want differ in shape or if
// any element pair exceeds eps (absolute tolerance).
func RequireDenseNearlyEqual(t *testing.T, got, want *grid.Dense, eps float64) {
	t.Helper()
	if !got.SameShape(want) {
		g1, g2, g3 := got.Dims()
		w1, w2, w3 := want.Dims()
		t.Fatalf("shape mismatch: got (%d, %d, %d), want (%d, %d, %d)", g1, g2, g3, w1, w2, w3)
	}
	RequireSliceNearlyEqual(t, got.Data(), want.Data(), eps)
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
