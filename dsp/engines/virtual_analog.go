package engines

import (
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
)

// maxDetune is the widest interval between the two oscillators, in semitones.
const maxDetune = 24.0

// VirtualAnalog is a pair of band-limited oscillators.
//
//   - Harmonics: interval of the second oscillator, up to two octaves.
//   - Timbre: pulse width of the square shape.
//   - Morph: crossfade from saw to pulse.
//
// Aux carries a sine at the fundamental.
type VirtualAnalog struct {
	sampleRate float64
	primary    phasor
	secondary  phasor
}

func (e *VirtualAnalog) Init(_ *buffer.Arena, sampleRate float64) error {
	if err := validateSampleRate("virtual analog", sampleRate); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	e.Reset()
	return nil
}

func (e *VirtualAnalog) Reset() {
	e.primary = phasor{}
	e.secondary = phasor{}
}

func (*VirtualAnalog) LoadUserData([]byte) {}

func (e *VirtualAnalog) Render(p *engine.Parameters, out, aux []float64) bool {
	f1 := core.NoteToFrequency(p.Note, e.sampleRate)
	f2 := core.NoteToFrequency(p.Note+p.Harmonics*maxDetune, e.sampleRate)
	width := 0.5 + 0.45*p.Timbre
	morph := p.Morph

	for i := range out {
		t1 := e.primary.next(f1)
		t2 := e.secondary.next(f2)

		a := bandLimitedSaw(t1, f1) + (bandLimitedPulse(t1, f1, width)-bandLimitedSaw(t1, f1))*morph
		b := bandLimitedSaw(t2, f2) + (bandLimitedPulse(t2, f2, width)-bandLimitedSaw(t2, f2))*morph

		out[i] = 0.5 * (a + b)
		aux[i] = math.Sin(twoPi * t1)
	}
	return false
}
