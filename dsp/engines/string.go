package engines

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/delay"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
)

const (
	// StringDelaySize bounds the lowest playable pitch to sampleRate/4093.
	StringDelaySize = 4096

	stringSeed            = 0x571
	stringRestrikeSpacing = 0.5
)

// String is a plucked string: a noise burst excites a damped, fractionally
// tuned delay loop. It applies its own amplitude envelope.
//
//   - Harmonics: brightness of the excitation burst.
//   - Timbre: brightness of the loop filter.
//   - Morph: decay time.
//
// With the trigger unpatched the string is plucked on reset and whenever the
// note moves by more than half a semitone. Aux carries a pickup at half the
// loop length.
type String struct {
	sampleRate float64
	line       *delay.Line
	noise      noiseSource

	excitation  int
	burstState  float64
	loopState   float64
	struckNote  float64
	needsStrike bool
}

func (e *String) Init(arena *buffer.Arena, sampleRate float64) error {
	if err := validateSampleRate("string", sampleRate); err != nil {
		return err
	}
	if arena == nil {
		return fmt.Errorf("string: nil arena")
	}
	storage, err := arena.Allocate(StringDelaySize)
	if err != nil {
		return fmt.Errorf("string: %w", err)
	}
	if e.line, err = delay.NewFromBuffer(storage); err != nil {
		return fmt.Errorf("string: %w", err)
	}
	e.sampleRate = sampleRate
	e.noise = newNoiseSource(stringSeed)
	e.Reset()
	return nil
}

func (e *String) Reset() {
	e.line.Reset()
	e.noise.reset()
	e.excitation = 0
	e.burstState = 0
	e.loopState = 0
	e.needsStrike = true
}

func (*String) LoadUserData([]byte) {}

func (e *String) Render(p *engine.Parameters, out, aux []float64) bool {
	f := core.NoteToFrequency(p.Note, e.sampleRate)
	period := float64(StringDelaySize - 3)
	if f > 0 {
		period = core.Clamp(1/f, 4, float64(StringDelaySize-3))
	}

	strike := false
	switch p.Trigger {
	case engine.TriggerRisingEdge:
		strike = true
	case engine.TriggerUnpatched:
		strike = e.needsStrike || math.Abs(p.Note-e.struckNote) > stringRestrikeSpacing
	}
	if strike {
		e.excitation = int(period)
		e.struckNote = p.Note
		e.needsStrike = false
	}

	burstCoefficient := 0.05 + 0.95*p.Harmonics
	loopCoefficient := 0.2 + 0.8*p.Timbre
	feedback := 1 - (1-p.Morph)*0.02 - 0.0005
	amplitude := core.Clamp(p.Accent, 0, 1.3)

	for i := range out {
		x := 0.0
		if e.excitation > 0 {
			e.burstState += (e.noise.bipolar() - e.burstState) * burstCoefficient
			x = e.burstState * amplitude
			e.excitation--
		}

		y := e.line.ReadFractional(period)
		e.loopState += (y - e.loopState) * loopCoefficient
		e.line.Write(core.SoftClip(x + e.loopState*feedback))

		out[i] = y
		aux[i] = e.line.ReadFractional(period * 0.5)
	}
	e.loopState = core.FlushDenormals(e.loopState)
	return true
}
