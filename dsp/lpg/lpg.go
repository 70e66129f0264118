// Package lpg implements the low-pass gate shaping stage: a coupled
// amplifier and low-pass filter whose gain, cutoff and high-frequency bleed
// follow a gate envelope.
package lpg

import (
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/filter/svf"
	"github.com/cwbudde/algo-macrosynth/dsp/interp"
)

// Resonance of the gate's low-pass filter.
const Resonance = 0.4

// LowPassGate shapes one channel. Control values are ramped linearly across
// each block from the previous call's targets.
type LowPassGate struct {
	previousGain      float64
	previousFrequency float64
	previousHFBleed   float64

	filter svf.Filter
}

// New returns a gate in the closed state.
func New() *LowPassGate {
	g := &LowPassGate{}
	g.Reset()
	return g
}

// Reset clears filter state and control history.
func (g *LowPassGate) Reset() {
	g.previousGain = 0
	g.previousFrequency = 0.5
	g.previousHFBleed = 0
	g.filter.SetFQ(g.previousFrequency, Resonance)
	g.filter.Reset()
}

// Process shapes in and writes quantized samples to out[0], out[stride], ...
// gain is the full output scale, frequency the normalized cutoff and hfBleed
// the share of unfiltered signal mixed back in. Processing stops at the
// shorter of in and the strided out.
func (g *LowPassGate) Process(gain, frequency, hfBleed float64, in []float64, out []int16, stride int) {
	if stride <= 0 {
		stride = 1
	}
	n := len(in)
	if m := (len(out) + stride - 1) / stride; m < n {
		n = m
	}

	gainRamp := interp.NewRamp(&g.previousGain, gain, n)
	frequencyRamp := interp.NewRamp(&g.previousFrequency, frequency, n)
	bleedRamp := interp.NewRamp(&g.previousHFBleed, hfBleed, n)

	for i := 0; i < n; i++ {
		g.filter.SetFQ(frequencyRamp.Next(), Resonance)
		s := in[i] * gainRamp.Next()
		lp := g.filter.Process(svf.ModeLowPass, s)
		out[i*stride] = core.Quantize16(lp + (s-lp)*bleedRamp.Next())
	}
}
