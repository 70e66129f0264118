package engines

import (
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
)

const (
	bassDrumOctaveDown   = 24.0
	bassDrumPitchTimeS   = 0.004
	bassDrumMinDecayS    = 0.05
	bassDrumMaxDecayS    = 1.0
	maxBassDrumPunch     = 4.0
	maxBassDrumOverdrive = 5.0
)

// BassDrum is a pitched sine with a fast downward pitch sweep. It applies its
// own amplitude envelope; with the trigger unpatched it sustains.
//
//   - Harmonics: depth of the pitch sweep.
//   - Timbre: overdrive.
//   - Morph: decay time.
//
// The drum sits two octaves below the note. Aux carries the clean sine.
type BassDrum struct {
	sampleRate   float64
	osc          phasor
	amplitude    float64
	pitchEnv     float64
	pitchRelease float64
}

func (e *BassDrum) Init(_ *buffer.Arena, sampleRate float64) error {
	if err := validateSampleRate("bass drum", sampleRate); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	e.pitchRelease = math.Exp(-1 / (bassDrumPitchTimeS * sampleRate))
	e.Reset()
	return nil
}

func (e *BassDrum) Reset() {
	e.osc = phasor{}
	e.amplitude = 0
	e.pitchEnv = 0
}

func (*BassDrum) LoadUserData([]byte) {}

func (e *BassDrum) Render(p *engine.Parameters, out, aux []float64) bool {
	f := core.NoteToFrequency(p.Note-bassDrumOctaveDown, e.sampleRate)
	decaySeconds := bassDrumMinDecayS * math.Pow(bassDrumMaxDecayS/bassDrumMinDecayS, p.Morph)
	release := math.Exp(-1 / (decaySeconds * e.sampleRate))
	punch := p.Harmonics * maxBassDrumPunch
	drive := 1 + p.Timbre*maxBassDrumOverdrive

	switch p.Trigger {
	case engine.TriggerRisingEdge:
		e.osc = phasor{}
		e.amplitude = 0.3 + 0.7*core.Clamp(p.Accent, 0, 1)
		e.pitchEnv = 1
	case engine.TriggerUnpatched:
		e.amplitude = 0.3 + 0.7*core.Clamp(p.Accent, 0, 1)
		e.pitchEnv = 0
		release = 1
	}

	for i := range out {
		t := e.osc.next(core.Clamp(f*(1+punch*e.pitchEnv), 0, 0.49))
		s := math.Sin(twoPi*t) * e.amplitude

		out[i] = core.SoftClip(s * drive)
		aux[i] = s

		e.amplitude *= release
		e.pitchEnv *= e.pitchRelease
	}
	e.amplitude = core.FlushDenormals(e.amplitude)
	e.pitchEnv = core.FlushDenormals(e.pitchEnv)
	return true
}
