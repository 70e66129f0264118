package voice

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/delay"
	"github.com/cwbudde/algo-macrosynth/dsp/effects/modulation"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
	"github.com/cwbudde/algo-macrosynth/dsp/envelope"
	"github.com/cwbudde/algo-macrosynth/dsp/postprocess"
	"github.com/cwbudde/algo-macrosynth/dsp/quantizer"
	"github.com/cwbudde/algo-macrosynth/dsp/userdata"
)

const (
	engineHysteresis = 0.05

	triggerRise = 0.3
	triggerFall = 0.1

	defaultAccent = 0.8
	minNote       = -119.0
	maxNote       = 120.0
	// Semitones of pitch envelope at full decay level.
	pitchEnvelopeRange = 48.0
)

const (
	channelOut = iota
	channelAux
	channelOutDry
	channelAuxDry
	numChannels
)

// Stand-ins for nil Render arguments. Render never writes through them.
var (
	zeroPatch Patch
	zeroMods  Modulations
)

// Voice renders one synthesizer voice.
type Voice struct {
	sampleRate   float64
	blockSize    int
	triggerDelay int

	registry  engine.Registry
	userData  userdata.UserData
	quantizer *quantizer.Hysteresis
	reload    atomic.Bool

	previousEngine int
	engineCV       float64
	previousNote   float64
	triggerState   bool

	decay   envelope.Decay
	gate    *envelope.LPG
	trigger *delay.Line
	insert  *modulation.Insert
	stages  [2]modulation.StageParams

	channels [numChannels]*postprocess.Channel

	out, aux       []float64
	outDry, auxDry []float64
	fadeOut        []float64
	fadeAux        []float64
	fadeOutDry     []float64
	fadeAuxDry     []float64
	rampUp         []float64
	rampDown       []float64
	pcm            []int16

	params engine.Parameters
}

// New builds a voice and initializes every engine from arena. A nil arena
// is replaced by one of DefaultArenaSize samples.
func New(arena *buffer.Arena, opts ...Option) (*Voice, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if arena == nil {
		var err error
		if arena, err = buffer.NewArena(DefaultArenaSize); err != nil {
			return nil, fmt.Errorf("voice: %w", err)
		}
	}

	v := &Voice{
		sampleRate:   cfg.processor.SampleRate,
		blockSize:    cfg.processor.BlockSize,
		triggerDelay: cfg.triggerDelay,
		userData:     userdata.New(cfg.provider),
		gate:         envelope.NewLPG(),
		pcm:          make([]int16, numChannels*cfg.processor.BlockSize),
	}

	if err := cfg.engineSet(&v.registry); err != nil {
		return nil, fmt.Errorf("voice: register engines: %w", err)
	}
	if v.registry.Len() == 0 {
		return nil, ErrNoEngines
	}
	err := v.registry.Each(func(i int, e engine.Engine) error {
		if err := e.Init(arena, v.sampleRate); err != nil {
			return fmt.Errorf("voice: init engine %d: %w", i, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if v.quantizer, err = quantizer.NewHysteresis(v.registry.Len(), engineHysteresis, true); err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}

	for _, buf := range []*[]float64{
		&v.out, &v.aux, &v.outDry, &v.auxDry,
		&v.fadeOut, &v.fadeAux, &v.fadeOutDry, &v.fadeAuxDry,
		&v.rampUp, &v.rampDown,
	} {
		if *buf, err = arena.Allocate(v.blockSize); err != nil {
			return nil, fmt.Errorf("voice: %w", err)
		}
	}

	storage, err := arena.Allocate(TriggerDelayCapacity)
	if err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}
	if v.trigger, err = delay.NewFromBuffer(storage); err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}

	if v.insert, err = modulation.NewInsert(v.sampleRate); err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}
	for i := range v.channels {
		v.channels[i] = postprocess.NewChannel()
	}

	v.Reset()
	return v, nil
}

// Reset returns the voice to its freshly constructed state. Engines are
// reset by the next block, which reselects one.
func (v *Voice) Reset() {
	v.previousEngine = -1
	v.engineCV = 0
	v.previousNote = 0
	v.triggerState = false
	v.quantizer.Reset()
	v.decay.Reset()
	v.gate.Reset()
	v.trigger.Reset()
	v.insert.Reset()
	for _, c := range v.channels {
		c.Reset()
	}
	v.reload.Store(false)
}

// RequestReload asks the active engine to reload its user data at the start
// of the next block. Requests made before that block are coalesced. It is
// safe to call from any goroutine.
func (v *Voice) RequestReload() {
	v.reload.Store(true)
}

// ActiveEngine returns the engine selected by the last rendered block, or
// -1 before the first block.
func (v *Voice) ActiveEngine() int { return v.previousEngine }

// GateGain returns the low-pass gate envelope gain in [0, 1].
func (v *Voice) GateGain() float64 { return v.gate.Gain() }

// DecayValue returns the decay envelope level in [0, 1].
func (v *Voice) DecayValue() float64 { return v.decay.Value() }

// NumEngines returns the number of registered engines.
func (v *Voice) NumEngines() int { return v.registry.Len() }

// SampleRate returns the sample rate in Hz.
func (v *Voice) SampleRate() float64 { return v.sampleRate }

// BlockSize returns the number of frames rendered per block.
func (v *Voice) BlockSize() int { return v.blockSize }

// Render writes len(frames) frames, one block of at most BlockSize frames
// at a time. Every block sees the same patch and modulations.
func (v *Voice) Render(patch *Patch, mods *Modulations, frames []Frame) {
	if patch == nil {
		patch = &zeroPatch
	}
	if mods == nil {
		mods = &zeroMods
	}

	for offset := 0; offset < len(frames); offset += v.blockSize {
		n := min(v.blockSize, len(frames)-offset)
		v.renderBlock(patch, mods, offset, frames[offset:offset+n])
	}
}

func (v *Voice) renderBlock(patch *Patch, mods *Modulations, offset int, frames []Frame) {
	n := len(frames)
	reload := v.reload.Swap(false)

	shortDecay, decayTail := decayParameters(patch.Decay, patch.LPGColour, n, v.sampleRate)

	// Trigger edges are detected on the delayed trigger.
	v.trigger.Write(mods.Trigger)
	trigger := v.trigger.Read(v.triggerDelay)
	previousTriggerState := v.triggerState
	if !previousTriggerState {
		if trigger > triggerRise {
			v.triggerState = true
			if !mods.LevelPatched {
				v.gate.Trigger()
			}
			v.decay.Trigger()
			v.engineCV = mods.Engine
		}
	} else if trigger < triggerFall {
		v.triggerState = false
	}
	if !mods.TriggerPatched {
		v.engineCV = mods.Engine
	}

	// Engine selection.
	selector := applyModulation(0, patch.EngineModulationAmount, true, v.engineCV, false, 0, 0, -1, 1)
	index := v.quantizer.Process(patch.Engine, selector)
	previous := v.previousEngine
	switching := previous >= 0 && index != previous
	current := v.registry.Get(index)
	if index != previous || reload {
		current.LoadUserData(v.userData.Slot(index))
		current.Reset()
		v.previousEngine = index
	}

	v.decay.Process(2 * shortDecay)
	decayValue := v.decay.Value()

	// Parameters.
	compressedLevel := math.Max(1.3*mods.Level/(0.3+math.Abs(mods.Level)), 0)
	useEnvelope := mods.TriggerPatched
	note := 0.5 * (mods.Note + v.previousNote)
	v.previousNote = mods.Note

	p := &v.params
	p.Note = applyModulation(patch.Note+note, patch.FrequencyModulationAmount,
		mods.FrequencyPatched, mods.Frequency, useEnvelope, decayValue*decayValue*pitchEnvelopeRange,
		1, minNote, maxNote)
	p.Harmonics = applyModulation(patch.Harmonics, patch.HarmonicsModulationAmount,
		mods.HarmonicsPatched, mods.Harmonics, useEnvelope, decayValue, 0, 0, 1)
	p.Timbre = applyModulation(patch.Timbre, patch.TimbreModulationAmount,
		mods.TimbrePatched, mods.Timbre, useEnvelope, decayValue, 0, 0, 1)
	p.Morph = applyModulation(patch.Morph, patch.MorphModulationAmount,
		mods.MorphPatched, mods.Morph, useEnvelope, decayValue, 0, 0, 1)

	p.Accent = defaultAccent
	if mods.LevelPatched {
		p.Accent = compressedLevel
	}

	switch {
	case !mods.TriggerPatched:
		p.Trigger = engine.TriggerUnpatched
	case !previousTriggerState && v.triggerState:
		p.Trigger = engine.TriggerRisingEdge
	default:
		p.Trigger = engine.TriggerLow
	}

	// Render.
	out, aux := v.out[:n], v.aux[:n]
	settings := v.registry.Settings(index)
	enveloped := current.Render(p, out, aux) || settings.AlreadyEnveloped
	outGain, auxGain := settings.OutGain, settings.AuxGain

	outDry, auxDry := v.outDry[:n], v.auxDry[:n]
	copy(outDry, out)
	copy(auxDry, aux)

	if switching {
		v.crossfade(p, previous, settings, out, aux, outDry, auxDry)
		outGain, auxGain = 1, 1
	}

	v.applyInsert(mods, offset, out, aux)

	// Gate.
	bypass := enveloped || (!mods.LevelPatched && !mods.TriggerPatched)
	if !bypass {
		if mods.LevelPatched {
			v.gate.ProcessLP(compressedLevel, shortDecay, decayTail, patch.LPGColour)
		} else {
			attack := core.NoteToFrequency(p.Note, v.sampleRate) * float64(n) * 2
			v.gate.ProcessPing(attack, shortDecay, decayTail, patch.LPGColour)
		}
	}

	gain, frequency, bleed := v.gate.Gain(), v.gate.Frequency(), v.gate.HFBleed()
	pcm := v.pcm[:numChannels*n]
	v.channels[channelOut].Process(outGain, bypass, gain, frequency, bleed, out, pcm[channelOut:], numChannels)
	v.channels[channelAux].Process(auxGain, bypass, gain, frequency, bleed, aux, pcm[channelAux:], numChannels)
	v.channels[channelOutDry].Process(outGain, bypass, gain, frequency, bleed, outDry, pcm[channelOutDry:], numChannels)
	v.channels[channelAuxDry].Process(auxGain, bypass, gain, frequency, bleed, auxDry, pcm[channelAuxDry:], numChannels)

	for i := range frames {
		s := pcm[i*numChannels:]
		frames[i] = Frame{
			Out:    s[channelOut],
			Aux:    s[channelAux],
			OutDry: s[channelOutDry],
			AuxDry: s[channelAuxDry],
		}
	}
}

// crossfade renders the outgoing engine and blends it into the incoming
// engine's wet and dry blocks. Every channel limits both sides with its own
// limiter history, so the dry channels track the wet ones exactly until the
// insert makes them differ.
func (v *Voice) crossfade(p *engine.Parameters, previous int, next engine.PostProcessingSettings,
	out, aux, outDry, auxDry []float64,
) {
	n := len(out)
	prevOut, prevAux := v.fadeOut[:n], v.fadeAux[:n]
	prevOutDry, prevAuxDry := v.fadeOutDry[:n], v.fadeAuxDry[:n]
	v.registry.Get(previous).Render(p, prevOut, prevAux)
	copy(prevOutDry, prevOut)
	copy(prevAuxDry, prevAux)

	up, down := v.rampUp[:n], v.rampDown[:n]
	for i := range up {
		up[i] = (float64(i) + 0.5) / float64(n)
		down[i] = 1 - up[i]
	}

	prev := v.registry.Settings(previous)
	v.channels[channelOut].Crossfade(next.OutGain, prev.OutGain, out, prevOut, up, down)
	v.channels[channelAux].Crossfade(next.AuxGain, prev.AuxGain, aux, prevAux, up, down)
	v.channels[channelOutDry].Crossfade(next.OutGain, prev.OutGain, outDry, prevOutDry, up, down)
	v.channels[channelAuxDry].Crossfade(next.AuxGain, prev.AuxGain, auxDry, prevAuxDry, up, down)
}

// applyInsert runs the modulation insert with each stage's input advanced
// to this block.
func (v *Voice) applyInsert(mods *Modulations, offset int, out, aux []float64) {
	for i := range v.stages {
		s := mods.Insert[i]
		if s.Input != nil {
			if offset <= len(s.Input) {
				s.Input = s.Input[offset:]
			} else {
				s.Input = nil
			}
		}
		v.stages[i] = s
	}
	v.insert.Process(&v.stages, out, aux)
}

// decayParameters returns the per-block decay rates of the envelopes for a
// block of n samples.
func decayParameters(decay, colour float64, n int, sampleRate float64) (shortDecay, decayTail float64) {
	decay = core.Clamp(decay, 0, 1)
	colour = core.Clamp(colour, 0, 1)
	block := float64(n) / sampleRate
	shortDecay = 200 * block * core.FastSemitonesToRatio(-96*decay)
	decayTail = 20*block*core.FastSemitonesToRatio(-72*decay+12*colour) - shortDecay
	return shortDecay, decayTail
}
