package spectral

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// RolloffFraction is the share of spectral energy below Report.Rolloff.
const RolloffFraction = 0.85

// ErrEmpty is returned when there is nothing to analyze.
var ErrEmpty = errors.New("spectral: empty signal")

// Report holds the figures computed by Analyze. Levels are linear with
// full scale at 1; frequencies are in Hz.
//
//nolint:revive
type Report struct {
	Length  int
	FFTSize int

	Peak    float64
	Peak_dB float64
	RMS     float64
	RMS_dB  float64
	DC      float64
	Clipped int

	PeakFrequency float64
	Centroid      float64
	Flatness      float64
	Rolloff       float64
}

// Analyzer reuses its FFT plan and scratch buffers across calls of the same
// size. It is not safe for concurrent use.
type Analyzer struct {
	sampleRate float64
	size       int
	plan       *algofft.Plan[complex128]
	window     []float64
	in, out    []complex128
	re, im     []float64
	magnitude  []float64
}

// NewAnalyzer creates an analyzer for signals sampled at sampleRate.
func NewAnalyzer(sampleRate float64) (*Analyzer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectral: sample rate must be > 0: %f", sampleRate)
	}
	return &Analyzer{sampleRate: sampleRate}, nil
}

// Analyze is a one-shot analysis of signal.
func Analyze(signal []float64, sampleRate float64) (Report, error) {
	a, err := NewAnalyzer(sampleRate)
	if err != nil {
		return Report{}, err
	}
	return a.Analyze(signal)
}

// Analyze computes a Report for signal. The FFT size is the next power of
// two at or above len(signal); the tail is zero padded.
func (a *Analyzer) Analyze(signal []float64) (Report, error) {
	if len(signal) == 0 {
		return Report{}, ErrEmpty
	}

	r := levels(signal)
	if err := a.prepare(nextPowerOf2(max(len(signal), 2))); err != nil {
		return Report{}, err
	}
	r.FFTSize = a.size

	hann(a.window[:len(signal)])
	for i := range a.in {
		a.in[i] = 0
	}
	for i, x := range signal {
		a.in[i] = complex(x*a.window[i], 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Report{}, fmt.Errorf("spectral: %w", err)
	}

	bins := a.size/2 + 1
	for i := 0; i < bins; i++ {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}
	mag := a.magnitude[:bins]
	vecmath.Magnitude(mag, a.re[:bins], a.im[:bins])

	binHz := a.sampleRate / float64(a.size)
	r.PeakFrequency = float64(peakBin(mag)) * binHz
	r.Centroid = centroid(mag, binHz)
	r.Flatness = flatness(mag)
	r.Rolloff = rolloff(mag, binHz, RolloffFraction)
	return r, nil
}

func (a *Analyzer) prepare(size int) error {
	if a.size == size {
		return nil
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return fmt.Errorf("spectral: fft plan of size %d: %w", size, err)
	}
	bins := size/2 + 1
	a.plan = plan
	a.size = size
	a.window = make([]float64, size)
	a.in = make([]complex128, size)
	a.out = make([]complex128, size)
	a.re = make([]float64, bins)
	a.im = make([]float64, bins)
	a.magnitude = make([]float64, bins)
	return nil
}

// FromPCM converts 16-bit samples to [-1, 1). Samples are read at
// pcm[0], pcm[stride], ...
func FromPCM(pcm []int16, stride int) []float64 {
	if stride <= 0 {
		stride = 1
	}
	out := make([]float64, (len(pcm)+stride-1)/stride)
	for i := range out {
		out[i] = float64(pcm[i*stride]) / 32768
	}
	return out
}

func levels(signal []float64) Report {
	r := Report{Length: len(signal)}
	sum, energy := 0.0, 0.0
	for _, x := range signal {
		a := math.Abs(x)
		if a > r.Peak {
			r.Peak = a
		}
		if a >= 32767.0/32768 {
			r.Clipped++
		}
		sum += x
		energy += x * x
	}
	r.DC = sum / float64(len(signal))
	r.RMS = math.Sqrt(energy / float64(len(signal)))
	r.Peak_dB = core.LinearToDB(r.Peak)
	r.RMS_dB = core.LinearToDB(r.RMS)
	return r
}

// hann fills w with a symmetric Hann window.
func hann(w []float64) {
	n := len(w)
	if n == 1 {
		w[0] = 1
		return
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
}

// peakBin ignores DC. It returns 0 when every other bin is empty.
func peakBin(mag []float64) int {
	best := 0
	for i := 1; i < len(mag); i++ {
		if mag[i] > 0 && (best == 0 || mag[i] > mag[best]) {
			best = i
		}
	}
	return best
}

func centroid(mag []float64, binHz float64) float64 {
	sum, weighted := 0.0, 0.0
	for i, v := range mag {
		sum += v
		weighted += float64(i) * binHz * v
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

// flatness is the ratio of geometric to arithmetic mean over every bin but
// DC. Any empty bin makes it zero.
func flatness(mag []float64) float64 {
	if len(mag) < 2 {
		return 0
	}
	sumLin, sumLog := 0.0, 0.0
	for _, v := range mag[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	n := float64(len(mag) - 1)
	return math.Exp(sumLog/n) / (sumLin / n)
}

func rolloff(mag []float64, binHz, fraction float64) float64 {
	total := 0.0
	for _, v := range mag {
		total += v * v
	}
	if total == 0 {
		return 0
	}
	cum := 0.0
	for i, v := range mag {
		cum += v * v
		if cum >= fraction*total {
			return float64(i) * binHz
		}
	}
	return float64(len(mag)-1) * binHz
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
