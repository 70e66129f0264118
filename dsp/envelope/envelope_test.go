package envelope

import (
	"math"
	"testing"
)

func TestDecayTriggerAndFall(t *testing.T) {
	var d Decay
	if d.Value() != 0 {
		t.Fatalf("initial Value() = %v, want 0", d.Value())
	}

	d.Trigger()
	if d.Value() != 1 {
		t.Fatalf("Value() after Trigger = %v, want 1", d.Value())
	}

	d.Process(0.5)
	d.Process(0.5)
	if d.Value() != 0.25 {
		t.Fatalf("Value() after two half-decays = %v, want 0.25", d.Value())
	}

	d.Process(-1)
	if d.Value() != 0.25 {
		t.Fatalf("negative rate changed value to %v", d.Value())
	}

	d.Process(2)
	if d.Value() != 0 {
		t.Fatalf("rate above 1 left %v, want 0", d.Value())
	}

	d.Trigger()
	d.Reset()
	if d.Value() != 0 {
		t.Fatalf("Value() after Reset = %v", d.Value())
	}
}

func TestLPGIdleIsOpen(t *testing.T) {
	e := NewLPG()
	if e.Gain() != 1 || e.Frequency() != openLPGFrequency || e.HFBleed() != 0 {
		t.Fatalf("idle gate = (%v, %v, %v)", e.Gain(), e.Frequency(), e.HFBleed())
	}
}

func TestLPGPingRisesThenFalls(t *testing.T) {
	e := NewLPG()
	e.Trigger()

	gains := make([]float64, 400)
	for i := range gains {
		e.ProcessPing(0.25, 0.05, 0.005, 0.3)
		gains[i] = e.Gain()
	}

	// The ramp reaches the top in block 3, which already releases from it.
	want := []float64{0.25, 0.5, 0.75, 0.95}
	for i, w := range want {
		if math.Abs(gains[i]-w) > 1e-12 {
			t.Fatalf("gain[%d] = %v, want %v", i, gains[i], w)
		}
	}
	for i := len(want); i < len(gains); i++ {
		if gains[i] > gains[i-1] {
			t.Fatalf("gain rose during release at block %d", i)
		}
	}
	if gains[len(gains)-1] > 0.01 {
		t.Fatalf("gate did not close: %v", gains[len(gains)-1])
	}
}

func TestLPGPingReleaseStartsWithRampEnd(t *testing.T) {
	e := NewLPG()
	e.Trigger()

	e.ProcessPing(2, 0.1, 0, 0)
	if got := e.Gain(); math.Abs(got-0.9) > 1e-12 {
		t.Fatalf("gain after a one-block ramp = %v, want 0.9", got)
	}

	e.ProcessPing(2, 0.1, 0, 0)
	if got := e.Gain(); math.Abs(got-0.81) > 1e-12 {
		t.Fatalf("gain one block later = %v, want 0.81", got)
	}
}

func TestLPGCutoffTracksGain(t *testing.T) {
	e := NewLPG()
	e.ProcessLP(1, 0.1, 0.01, 0)
	bright := e.Frequency()
	e.ProcessLP(0, 0.5, 0.01, 0)
	dark := e.Frequency()

	if !(bright > dark) {
		t.Fatalf("cutoff did not fall with gain: bright=%v dark=%v", bright, dark)
	}
	if dark < minLPGFrequency || bright > maxLPGFrequency {
		t.Fatalf("cutoff out of range: %v, %v", dark, bright)
	}
}

func TestLPGColourControlsBleed(t *testing.T) {
	e := NewLPG()
	e.ProcessLP(0.5, 0.1, 0.01, 1.7)
	if e.HFBleed() != 1 {
		t.Fatalf("HFBleed() = %v, want clamped 1", e.HFBleed())
	}
	e.ProcessLP(0.5, 0.1, 0.01, -3)
	if e.HFBleed() != 0 {
		t.Fatalf("HFBleed() = %v, want clamped 0", e.HFBleed())
	}
}

func TestLPGFollowsLevel(t *testing.T) {
	e := NewLPG()
	for _, level := range []float64{0.2, 0.8, 0.8} {
		e.ProcessLP(level, 0.1, 0.01, 0)
		if math.Abs(e.Gain()-level) > 1e-12 {
			t.Fatalf("rising level %v gave gain %v", level, e.Gain())
		}
	}
	e.ProcessLP(0.1, 0.1, 0.01, 0)
	if e.Gain() >= 0.8 || e.Gain() <= 0.1 {
		t.Fatalf("falling gain = %v, want between 0.1 and 0.8", e.Gain())
	}
}
