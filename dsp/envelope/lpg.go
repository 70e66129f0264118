package envelope

import "github.com/cwbudde/algo-macrosynth/dsp/core"

const (
	minLPGFrequency  = 0.003
	maxLPGFrequency  = 0.497
	openLPGFrequency = 0.5
)

// LPG models the vactrol of a low-pass gate. A ping ramps the cell up at the
// attack rate, then it falls back with a fast initial slope (shortDecay) that
// stretches into a slow tail as the cell darkens.
type LPG struct {
	vactrol   float64
	gain      float64
	frequency float64
	hfBleed   float64
	rampUp    bool
}

// NewLPG returns a gate envelope in its idle, fully open state.
func NewLPG() *LPG {
	e := &LPG{}
	e.Reset()
	return e
}

// Reset returns the envelope to its idle state.
func (e *LPG) Reset() {
	e.vactrol = 0
	e.gain = 1
	e.frequency = openLPGFrequency
	e.hfBleed = 0
	e.rampUp = false
}

// Trigger starts a ping on the next ProcessPing call.
func (e *LPG) Trigger() {
	e.rampUp = true
}

// ProcessPing advances a triggered (pinged) gate by one block. attack is the
// per-block increment of the ramp. The release starts in the block that
// completes the ramp.
func (e *LPG) ProcessPing(attack, shortDecay, decayTail, hf float64) {
	level := 0.0
	if e.rampUp {
		e.vactrol += attack
		if e.vactrol >= 1 || attack <= 0 {
			e.vactrol = 1
			e.rampUp = false
		} else {
			level = e.vactrol
		}
	}
	e.ProcessLP(level, shortDecay, decayTail, hf)
}

// ProcessLP follows an external control level for one block.
func (e *LPG) ProcessLP(level, shortDecay, decayTail, hf float64) {
	level = core.Clamp(level, 0, 1)
	if level >= e.vactrol {
		e.vactrol = level
	} else {
		rate := core.Clamp(shortDecay+decayTail*(1-e.vactrol), 0, 1)
		e.vactrol += (level - e.vactrol) * rate
	}
	e.vactrol = core.FlushDenormals(e.vactrol)

	hf = core.Clamp(hf, 0, 1)
	v := e.vactrol
	e.gain = v
	e.frequency = core.Clamp(minLPGFrequency+0.3*v*v+0.2*hf*v, minLPGFrequency, maxLPGFrequency)
	e.hfBleed = hf
}

// Gain returns the VCA gain in [0, 1].
func (e *LPG) Gain() float64 { return e.gain }

// Frequency returns the filter cutoff normalized to the sample rate.
func (e *LPG) Frequency() float64 { return e.frequency }

// HFBleed returns how much unfiltered signal leaks past the filter, in [0, 1].
func (e *LPG) HFBleed() float64 { return e.hfBleed }
