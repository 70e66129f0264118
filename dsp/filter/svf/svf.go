// Package svf implements a topology-preserving-transform state-variable
// filter whose cutoff may be changed every sample without zipper noise or
// instability.
package svf

import "math"

const (
	maxFrequency = 0.497
	minQ         = 0.1
)

// Mode selects the response returned by Process.
type Mode int

const (
	ModeLowPass Mode = iota
	ModeBandPass
	ModeBandPassNormalized
	ModeHighPass
)

// Filter is a 2-pole TPT state-variable filter.
// Frequencies are normalized to the sample rate.
type Filter struct {
	g, r, h float64

	state1 float64
	state2 float64
}

// New returns a filter at f (normalized) and resonance q.
func New(f, q float64) *Filter {
	s := &Filter{}
	s.SetFQ(f, q)
	return s
}

// SetFQ updates cutoff and resonance. f is clamped to (0, 0.497], q to >= 0.1.
func (s *Filter) SetFQ(f, q float64) {
	if !(f > 0) {
		f = 1e-6
	}
	if f > maxFrequency {
		f = maxFrequency
	}
	if !(q >= minQ) {
		q = minQ
	}

	s.g = math.Tan(math.Pi * f)
	s.r = 1 / q
	s.h = 1 / (1 + s.r*s.g + s.g*s.g)
}

// Reset clears the integrator state.
func (s *Filter) Reset() {
	s.state1 = 0
	s.state2 = 0
}

// ProcessAll advances the filter and returns all three responses.
func (s *Filter) ProcessAll(in float64) (lp, bp, hp float64) {
	hp = (in - s.r*s.state1 - s.g*s.state1 - s.state2) * s.h
	bp = s.g*hp + s.state1
	s.state1 = s.g*hp + bp
	lp = s.g*bp + s.state2
	s.state2 = s.g*bp + lp
	return lp, bp, hp
}

// Process advances the filter and returns the response selected by mode.
func (s *Filter) Process(mode Mode, in float64) float64 {
	lp, bp, hp := s.ProcessAll(in)
	switch mode {
	case ModeBandPass:
		return bp
	case ModeBandPassNormalized:
		return bp * s.r
	case ModeHighPass:
		return hp
	default:
		return lp
	}
}
