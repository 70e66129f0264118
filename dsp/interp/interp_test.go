package interp

import "testing"

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("Linear2() = %v, want 2.5", got)
	}
}

func TestRampReachesTarget(t *testing.T) {
	state := 0.0
	r := NewRamp(&state, 1, 4)

	want := []float64{0.25, 0.5, 0.75, 1}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Fatalf("Next() #%d = %v, want %v", i, got, w)
		}
	}

	if state != 1 {
		t.Fatalf("state = %v, want 1", state)
	}
}

func TestRampChainsAcrossBlocks(t *testing.T) {
	state := 0.0
	r := NewRamp(&state, 1, 2)
	r.Next()
	r.Next()

	r = NewRamp(&state, 0, 2)
	if got := r.Next(); got != 0.5 {
		t.Fatalf("second block first sample = %v, want 0.5", got)
	}
}

func TestRampZeroSize(t *testing.T) {
	state := 3.0
	r := NewRamp(&state, 5, 0)
	if r.Value() != 5 || state != 5 {
		t.Fatalf("Value() = %v, state = %v, want 5, 5", r.Value(), state)
	}
}
