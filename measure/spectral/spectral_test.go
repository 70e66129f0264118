package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-macrosynth/internal/testutil"
)

const sampleRate = 48000

func TestAnalyzeSine(t *testing.T) {
	signal := testutil.DeterministicSine(1000, sampleRate, 0.5, 4096)
	r, err := Analyze(signal, sampleRate)
	if err != nil {
		t.Fatal(err)
	}

	binHz := float64(sampleRate) / float64(r.FFTSize)
	if r.FFTSize != 4096 || r.Length != 4096 {
		t.Fatalf("sizes = %d/%d, want 4096", r.FFTSize, r.Length)
	}
	if math.Abs(r.PeakFrequency-1000) > binHz {
		t.Fatalf("PeakFrequency = %v, want 1000 +- %v", r.PeakFrequency, binHz)
	}
	if math.Abs(r.Centroid-1000) > 50 {
		t.Fatalf("Centroid = %v, want near 1000", r.Centroid)
	}
	if math.Abs(r.Rolloff-1000) > 2*binHz {
		t.Fatalf("Rolloff = %v, want near 1000", r.Rolloff)
	}
	if r.Flatness > 0.1 {
		t.Fatalf("Flatness = %v, want tonal", r.Flatness)
	}
	if math.Abs(r.RMS-0.5/math.Sqrt2) > 1e-3 || math.Abs(r.Peak-0.5) > 1e-3 {
		t.Fatalf("RMS/Peak = %v/%v", r.RMS, r.Peak)
	}
	if math.Abs(r.Peak_dB-20*math.Log10(r.Peak)) > 1e-12 {
		t.Fatalf("Peak_dB = %v", r.Peak_dB)
	}
	// 4096 samples hold 85.33 cycles; the partial cycle leaves a mean of
	// about 1.3e-3.
	if math.Abs(r.DC) > 2e-3 || r.Clipped != 0 {
		t.Fatalf("DC/Clipped = %v/%d", r.DC, r.Clipped)
	}
}

func TestAnalyzeNoiseIsFlat(t *testing.T) {
	r, err := Analyze(testutil.DeterministicNoise(7, 0.5, 8192), sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	if r.Flatness < 0.6 {
		t.Fatalf("Flatness = %v, want noise-like", r.Flatness)
	}
	if r.Centroid < 8000 || r.Centroid > 16000 {
		t.Fatalf("Centroid = %v, want near the middle of the band", r.Centroid)
	}
}

func TestAnalyzeLevels(t *testing.T) {
	tests := []struct {
		name    string
		signal  []float64
		dc      float64
		peak    float64
		clipped int
	}{
		{"dc", testutil.DC(0.25, 1000), 0.25, 0.25, 0},
		{"full scale", []float64{1, -1, 1, -1}, 0, 1, 4},
		{"silence", make([]float64, 300), 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Analyze(tt.signal, sampleRate)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(r.DC-tt.dc) > 1e-12 || r.Peak != tt.peak || r.Clipped != tt.clipped {
				t.Fatalf("DC/Peak/Clipped = %v/%v/%d, want %v/%v/%d",
					r.DC, r.Peak, r.Clipped, tt.dc, tt.peak, tt.clipped)
			}
		})
	}
}

func TestAnalyzeSilence(t *testing.T) {
	r, err := Analyze(make([]float64, 256), sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(r.RMS_dB, -1) || !math.IsInf(r.Peak_dB, -1) {
		t.Fatalf("dB levels = %v/%v, want -Inf", r.RMS_dB, r.Peak_dB)
	}
	if r.PeakFrequency != 0 || r.Centroid != 0 || r.Flatness != 0 || r.Rolloff != 0 {
		t.Fatalf("spectral figures of silence = %+v", r)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(nil, sampleRate); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Analyze(nil) error = %v, want ErrEmpty", err)
	}
	if _, err := NewAnalyzer(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewAnalyzer(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
}

func TestAnalyzerReuse(t *testing.T) {
	a, err := NewAnalyzer(sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	sine := testutil.DeterministicSine(440, sampleRate, 0.3, 1500)
	first, err := a.Analyze(sine)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Analyze(testutil.DeterministicNoise(1, 1, 5000)); err != nil {
		t.Fatal(err)
	}
	again, err := a.Analyze(sine)
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Fatalf("reused analyzer differs:\n%+v\n%+v", first, again)
	}
	if first.FFTSize != 2048 {
		t.Fatalf("FFTSize = %d, want 2048", first.FFTSize)
	}
}

func TestFromPCM(t *testing.T) {
	got := FromPCM([]int16{-32768, 0, 16384, 1, 2, 3}, 2)
	want := []float64{-1, 0.5, 2.0 / 32768}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)

	if got := FromPCM([]int16{16384}, 0); len(got) != 1 || got[0] != 0.5 {
		t.Fatalf("FromPCM stride 0 = %v", got)
	}
}
