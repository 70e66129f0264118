package engines

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
	"github.com/cwbudde/algo-macrosynth/dsp/interp"
)

const (
	// WavetableWaves is the number of waves in a bank.
	WavetableWaves = 8
	// WavetableSize is the length of one wave in samples.
	WavetableSize = 256

	waveStride = WavetableSize + 1
)

// Wavetable scans a bank of eight single-cycle waves.
//
//   - Harmonics: level of a sub-octave voice mixed into aux.
//   - Timbre: phase warp, pushing energy towards the start of the cycle.
//   - Morph: position in the bank, interpolated between neighbours.
//
// User data replaces the built-in bank: up to eight waves of 256 signed
// 16-bit little-endian samples. Waves beyond the data length keep their
// built-in shape.
type Wavetable struct {
	sampleRate float64
	builtin    []float64
	bank       []float64
	osc        phasor
	sub        phasor
}

func (e *Wavetable) Init(arena *buffer.Arena, sampleRate float64) error {
	if err := validateSampleRate("wavetable", sampleRate); err != nil {
		return err
	}
	if arena == nil {
		return fmt.Errorf("wavetable: nil arena")
	}
	var err error
	if e.builtin, err = arena.Allocate(WavetableWaves * waveStride); err != nil {
		return fmt.Errorf("wavetable: %w", err)
	}
	if e.bank, err = arena.Allocate(WavetableWaves * waveStride); err != nil {
		return fmt.Errorf("wavetable: %w", err)
	}
	e.sampleRate = sampleRate
	buildBuiltinBank(e.builtin)
	copy(e.bank, e.builtin)
	e.Reset()
	return nil
}

func (e *Wavetable) Reset() {
	e.osc = phasor{}
	e.sub = phasor{}
}

func (e *Wavetable) LoadUserData(data []byte) {
	copy(e.bank, e.builtin)
	for w := 0; w < WavetableWaves; w++ {
		offset := w * WavetableSize * 2
		if offset+WavetableSize*2 > len(data) {
			break
		}
		wave := e.bank[w*waveStride : (w+1)*waveStride]
		for i := 0; i < WavetableSize; i++ {
			v := int16(binary.LittleEndian.Uint16(data[offset+2*i:]))
			wave[i] = float64(v) / 32768
		}
		wave[WavetableSize] = wave[0]
	}
}

func (e *Wavetable) Render(p *engine.Parameters, out, aux []float64) bool {
	f := core.NoteToFrequency(p.Note, e.sampleRate)
	position := p.Morph * (WavetableWaves - 1)
	w0 := min(int(position), WavetableWaves-2)
	blend := position - float64(w0)
	warp := 1 + 3*p.Timbre
	subLevel := p.Harmonics

	for i := range out {
		t := math.Pow(e.osc.next(f), warp)
		a := e.lookup(w0, t)
		b := e.lookup(w0+1, t)
		out[i] = interp.Linear2(blend, a, b)

		s := e.lookup(0, e.sub.next(0.5*f))
		aux[i] = out[i]*(1-0.5*subLevel) + s*0.5*subLevel
	}
	return false
}

func (e *Wavetable) lookup(wave int, t float64) float64 {
	x := t * WavetableSize
	i := int(x)
	if i >= WavetableSize {
		i = WavetableSize - 1
	}
	frac := x - float64(i)
	w := e.bank[wave*waveStride:]
	return interp.Linear2(frac, w[i], w[i+1])
}

// buildBuiltinBank fills dst with additive waves of increasing brightness.
func buildBuiltinBank(dst []float64) {
	type spectrum func(h int) float64
	shapes := [WavetableWaves]spectrum{
		func(h int) float64 { return b2f(h == 1) },
		func(h int) float64 { return b2f(h%2 == 1) / float64(h*h) },
		func(h int) float64 { return b2f(h%2 == 1) / float64(h) },
		func(h int) float64 { return 1 / float64(h) },
		func(h int) float64 { return math.Sin(float64(h)*math.Pi*0.25) / float64(h) },
		func(h int) float64 { return math.Exp(-math.Abs(float64(h)-6) * 0.7) },
		func(h int) float64 { return b2f(h%3 != 0) / math.Sqrt(float64(h)) },
		func(h int) float64 { return 1 / math.Sqrt(float64(h)) },
	}
	const harmonics = 24

	for w, shape := range shapes {
		wave := dst[w*waveStride : (w+1)*waveStride]
		peak := 0.0
		for i := 0; i < WavetableSize; i++ {
			t := float64(i) / WavetableSize
			v := 0.0
			for h := 1; h <= harmonics; h++ {
				v += shape(h) * math.Sin(twoPi*float64(h)*t)
			}
			wave[i] = v
			peak = math.Max(peak, math.Abs(v))
		}
		if peak > 0 {
			for i := 0; i < WavetableSize; i++ {
				wave[i] /= peak
			}
		}
		wave[WavetableSize] = wave[0]
	}
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
