package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of a sine starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	w := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude). The
// same seed always yields the same samples.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones is DC(1, n).
func Ones(n int) []float64 {
	return DC(1, n)
}

// LinearSweep returns length values from start to end, both included. Used
// as a slowly moving control voltage.
func LinearSweep(start, end float64, length int) []float64 {
	out := make([]float64, length)
	switch length {
	case 0:
		return out
	case 1:
		out[0] = start
		return out
	}
	step := (end - start) / float64(length-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[length-1] = end
	return out
}
