package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-macrosynth/internal/testutil"
)

func TestNewVocoderValidation(t *testing.T) {
	tests := []struct {
		name string
		sr   float64
		opts []VocoderOption
	}{
		{"zero rate", 0, nil},
		{"nan rate", math.NaN(), nil},
		{"rate below first band", 200, nil},
		{"attack zero", 48000, []VocoderOption{WithVocoderAttack(0)}},
		{"attack nan", 48000, []VocoderOption{WithVocoderAttack(math.NaN())}},
		{"release too long", 48000, []VocoderOption{WithVocoderRelease(5000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewVocoder(tt.sr, tt.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestVocoderBandCountFollowsSampleRate(t *testing.T) {
	tests := []struct {
		sr   float64
		want int
	}{
		{48000, 24},
		{32000, 23},
		{16000, 20},
	}
	for _, tt := range tests {
		v, err := NewVocoder(tt.sr, nil, WithVocoderRelease(20))
		if err != nil {
			t.Fatal(err)
		}
		if v.NumBands() != tt.want {
			t.Fatalf("NumBands() at %v Hz = %d, want %d", tt.sr, v.NumBands(), tt.want)
		}
		if v.Release() != 20 {
			t.Fatalf("Release() = %v, want 20", v.Release())
		}
	}
}

func TestBarkQ(t *testing.T) {
	// Band 1 spans 150 Hz to 250 Hz.
	if q := barkQ(1); math.Abs(q-2) > 1e-12 {
		t.Fatalf("barkQ(1) = %v, want 2", q)
	}
	for i := range barkFrequencies {
		if q := barkQ(i); !(q > 0.5 && q < 10) {
			t.Fatalf("barkQ(%d) = %v out of range", i, q)
		}
	}
}

func TestVocoderSilentModulatorSilencesCarrier(t *testing.T) {
	v, err := NewVocoder(48000)
	if err != nil {
		t.Fatal(err)
	}

	carrier := testutil.DeterministicNoise(1, 1, 4800)
	out := make([]float64, len(carrier))
	if err := v.ProcessBlock(make([]float64, len(carrier)), carrier, out); err != nil {
		t.Fatal(err)
	}
	for i, y := range out {
		if y != 0 {
			t.Fatalf("sample %d = %v, want 0 with silent modulator", i, y)
		}
	}
}

func TestVocoderFollowsModulatorSpectrum(t *testing.T) {
	bandEnergy := func(modulatorHz float64) (low, high float64) {
		v, err := NewVocoder(48000)
		if err != nil {
			t.Fatal(err)
		}
		modulator := testutil.DeterministicSine(modulatorHz, 48000, 1, 19200)
		carrier := testutil.DeterministicNoise(7, 1, len(modulator))
		out := make([]float64, len(modulator))
		if err := v.ProcessBlock(modulator, carrier, out); err != nil {
			t.Fatal(err)
		}
		testutil.RequireFinite(t, out)

		// Split the tail with a crude one-pole low-pass around 1.5 kHz.
		lp := 0.0
		a := 1 - math.Exp(-2*math.Pi*1500/48000)
		for _, y := range out[9600:] {
			lp += a * (y - lp)
			low += lp * lp
			high += (y - lp) * (y - lp)
		}
		return low, high
	}

	low1, high1 := bandEnergy(300)
	low2, high2 := bandEnergy(6400)
	if !(low1 > high1) || !(high2 > low2) {
		t.Fatalf("energy split 300 Hz = %v/%v, 6.4 kHz = %v/%v", low1, high1, low2, high2)
	}
}

func TestVocoderBlockLengthMismatch(t *testing.T) {
	v, err := NewVocoder(48000)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.ProcessBlock(make([]float64, 3), make([]float64, 4), make([]float64, 4)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestVocoderResetAndRelease(t *testing.T) {
	v, err := NewVocoder(48000)
	if err != nil {
		t.Fatal(err)
	}
	in := testutil.DeterministicNoise(9, 1, 512)

	a := make([]float64, len(in))
	if err := v.ProcessBlock(in, in, a); err != nil {
		t.Fatal(err)
	}
	v.Reset()
	b := make([]float64, len(in))
	if err := v.ProcessBlock(in, in, b); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, b, a, 0)

	if err := v.SetRelease(50); err != nil || v.Release() != 50 {
		t.Fatalf("SetRelease(50) = %v, Release() = %v", err, v.Release())
	}
	if err := v.SetRelease(0); err == nil || v.Release() != 50 {
		t.Fatalf("SetRelease(0) = %v, Release() = %v", err, v.Release())
	}
	if allocs := testing.AllocsPerRun(100, func() { v.SetReleaseClamped(80) }); allocs != 0 {
		t.Fatalf("SetReleaseClamped allocates %v times", allocs)
	}
}

func TestVocoderSetReleaseClamped(t *testing.T) {
	v, err := NewVocoder(48000)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in, want float64
	}{
		{in: 120, want: 120},
		{in: 0, want: 0.01},
		{in: -5, want: 0.01},
		{in: 5000, want: 1000},
		{in: math.NaN(), want: 0.01},
	}
	for _, tt := range tests {
		v.SetReleaseClamped(tt.in)
		if got := v.Release(); got != tt.want {
			t.Fatalf("SetReleaseClamped(%v): Release() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
