package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have equal length and
// every pair differs by at most eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireInt16Equal fails t at the first index where got and want differ.
func RequireInt16Equal(t *testing.T, got, want []int16) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

// MaxStep returns the largest absolute difference between neighbouring
// samples, the size of the worst discontinuity in x.
func MaxStep(x []int16) int {
	worst := 0
	for i := 1; i < len(x); i++ {
		d := int(x[i]) - int(x[i-1])
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}
