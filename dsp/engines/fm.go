package engines

import (
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
)

var fmRatios = [...]float64{0.5, 1, 1.5, 2, 3, 4, 5, 7}

const (
	maxFMIndex    = 8.0
	maxFMFeedback = 1.5
)

// FM is a two-operator phase modulation pair.
//
//   - Harmonics: modulator ratio, picked from a table of musical ratios.
//   - Timbre: modulation index.
//   - Morph: modulator self-feedback.
//
// Aux carries the carrier at half the index.
type FM struct {
	sampleRate float64
	carrier    phasor
	modulator  phasor
	previous   float64
}

func (e *FM) Init(_ *buffer.Arena, sampleRate float64) error {
	if err := validateSampleRate("fm", sampleRate); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	e.Reset()
	return nil
}

func (e *FM) Reset() {
	e.carrier = phasor{}
	e.modulator = phasor{}
	e.previous = 0
}

func (*FM) LoadUserData([]byte) {}

func (e *FM) Render(p *engine.Parameters, out, aux []float64) bool {
	f := core.NoteToFrequency(p.Note, e.sampleRate)
	ratio := fmRatios[min(int(p.Harmonics*float64(len(fmRatios))), len(fmRatios)-1)]
	fm := core.Clamp(f*ratio, 0, 0.49)
	index := p.Timbre * p.Timbre * maxFMIndex
	feedback := p.Morph * maxFMFeedback

	for i := range out {
		tc := e.carrier.next(f)
		tm := e.modulator.next(fm)

		m := math.Sin(twoPi*tm + feedback*e.previous)
		e.previous = m

		out[i] = math.Sin(twoPi*tc + index*m)
		aux[i] = math.Sin(twoPi*tc + 0.5*index*m)
	}
	return false
}
