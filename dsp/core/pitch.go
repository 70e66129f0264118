package core

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

const (
	ln2            = 0.693147180559945309417232121458
	a4Note         = 69.0
	a4Frequency    = 440.0
	maxNormalizedF = 0.49
)

// SemitonesToRatio returns the frequency ratio for an interval in semitones.
func SemitonesToRatio(semitones float64) float64 {
	return math.Exp2(semitones / 12)
}

// FastSemitonesToRatio is SemitonesToRatio through a fast exp approximation.
// It is meant for control-rate coefficients, not for oscillator pitch.
func FastSemitonesToRatio(semitones float64) float64 {
	return approx.FastExp(semitones / 12 * ln2)
}

// NoteToFrequency converts a MIDI-style note number to a frequency normalized
// to the sample rate, limited below Nyquist.
func NoteToFrequency(note, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	f := a4Frequency / sampleRate * SemitonesToRatio(note-a4Note)

	return Clamp(f, 0, maxNormalizedF)
}
