package engines

import (
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
	"github.com/cwbudde/algo-macrosynth/dsp/filter/svf"
)

const (
	noiseSeed       = 0x5eed
	noiseCutoffSpan = 60.0
	maxNoiseQ       = 40.0
)

// Noise is white noise through a resonant state-variable filter. Output can
// exceed full scale at high resonance; register it with a negative gain.
//
//   - Harmonics: filter resonance.
//   - Timbre: cutoff offset from the note, five octaves either way.
//   - Morph: response, from low-pass through band-pass to high-pass.
//
// Aux carries sample-and-hold noise clocked at the note frequency.
type Noise struct {
	sampleRate float64
	noise      noiseSource
	filter     svf.Filter
	clock      phasor
	held       float64
}

func (e *Noise) Init(_ *buffer.Arena, sampleRate float64) error {
	if err := validateSampleRate("noise", sampleRate); err != nil {
		return err
	}
	e.sampleRate = sampleRate
	e.noise = newNoiseSource(noiseSeed)
	e.Reset()
	return nil
}

func (e *Noise) Reset() {
	e.noise.reset()
	e.filter.Reset()
	e.clock = phasor{}
	e.held = 0
}

func (*Noise) LoadUserData([]byte) {}

func (e *Noise) Render(p *engine.Parameters, out, aux []float64) bool {
	f := core.NoteToFrequency(p.Note, e.sampleRate)
	cutoff := core.NoteToFrequency(p.Note+(p.Timbre-0.5)*noiseCutoffSpan*2, e.sampleRate)
	q := 0.5 + p.Harmonics*p.Harmonics*maxNoiseQ
	e.filter.SetFQ(cutoff, q)

	// Morph 0..0.5 fades low-pass to band-pass, 0.5..1 band-pass to high-pass.
	lpLevel := core.Clamp(1-2*p.Morph, 0, 1)
	hpLevel := core.Clamp(2*p.Morph-1, 0, 1)
	bpLevel := 1 - lpLevel - hpLevel
	compensation := 1 / math.Sqrt(q)

	for i := range out {
		x := e.noise.bipolar()
		lp, bp, hp := e.filter.ProcessAll(x)
		out[i] = (lp*lpLevel + bp*bpLevel + hp*hpLevel) * compensation

		previous := e.clock.phase
		if e.clock.next(f) < previous {
			e.held = x
		}
		aux[i] = e.held
	}
	return false
}
