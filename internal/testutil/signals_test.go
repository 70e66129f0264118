package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 || s[0] != 0 {
		t.Fatalf("len = %d, s[0] = %v", len(s), s[0])
	}
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("quarter period = %v, want 0.5", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.25, 256)
	b := DeterministicNoise(42, 0.25, 256)
	c := DeterministicNoise(43, 0.25, 256)

	differs := false
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seed 42 not reproducible at %d", i)
		}
		if a[i] < -0.25 || a[i] >= 0.25 {
			t.Fatalf("a[%d] = %v outside amplitude", i, a[i])
		}
		differs = differs || a[i] != c[i]
	}
	if !differs {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestConstantSignals(t *testing.T) {
	RequireSliceNearlyEqual(t, DC(-0.5, 3), []float64{-0.5, -0.5, -0.5}, 0)
	RequireSliceNearlyEqual(t, Ones(2), []float64{1, 1}, 0)
	if len(DC(1, 0)) != 0 {
		t.Fatal("DC(1, 0) not empty")
	}
}

func TestLinearSweep(t *testing.T) {
	tests := []struct {
		start, end float64
		n          int
		want       []float64
	}{
		{0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{1, -1, 3, []float64{1, 0, -1}},
		{3, 9, 1, []float64{3}},
		{0, 1, 0, []float64{}},
	}
	for _, tt := range tests {
		RequireSliceNearlyEqual(t, LinearSweep(tt.start, tt.end, tt.n), tt.want, 1e-15)
	}
}
