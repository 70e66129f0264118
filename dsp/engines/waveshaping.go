package engines

import (
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
)

const maxShaperGain = 6.0

// Waveshaping runs a triangle through a sine folder.
//
//   - Harmonics: asymmetry added before folding.
//   - Timbre: folding gain.
//   - Morph: blend from the folded signal to a saturated one.
//
// Aux carries the saturated triangle.
type Waveshaping struct {
	sampleRate float64
	osc        phasor
}

func (e *Waveshaping) Init(_ *buffer.Arena, sampleRate float64) error {
	if err := validateSampleRate("waveshaping", sampleRate); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	e.Reset()
	return nil
}

func (e *Waveshaping) Reset() {
	e.osc = phasor{}
}

func (*Waveshaping) LoadUserData([]byte) {}

func (e *Waveshaping) Render(p *engine.Parameters, out, aux []float64) bool {
	f := core.NoteToFrequency(p.Note, e.sampleRate)
	gain := 1 + p.Timbre*maxShaperGain
	bias := p.Harmonics * 0.5

	for i := range out {
		t := e.osc.next(f)
		tri := 1 - 4*math.Abs(t-0.5)

		folded := math.Sin(0.5 * math.Pi * (tri + bias*tri*tri) * gain)
		saturated := core.SoftClip(tri * gain)

		out[i] = folded + (saturated-folded)*p.Morph
		aux[i] = saturated
	}
	return false
}
