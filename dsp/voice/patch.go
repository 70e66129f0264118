package voice

import "github.com/cwbudde/algo-macrosynth/dsp/effects/modulation"

// Patch holds the slow, user-set parameters of a voice.
type Patch struct {
	// Note is the base pitch in semitones, MIDI numbering.
	Note float64

	Harmonics float64
	Timbre    float64
	Morph     float64

	// Modulation depths in [-1, 1]. Depths within ±0.05 have no effect.
	FrequencyModulationAmount float64
	HarmonicsModulationAmount float64
	TimbreModulationAmount    float64
	MorphModulationAmount     float64
	EngineModulationAmount    float64

	// Engine is the nominal engine index; Modulations.Engine offsets it.
	Engine int

	Decay     float64
	LPGColour float64
}

// DefaultPatch returns a playable patch centred on every macro.
func DefaultPatch() Patch {
	return Patch{
		Note:                   48,
		Harmonics:              0.5,
		Timbre:                 0.5,
		Morph:                  0.5,
		EngineModulationAmount: 1,
		Decay:                  0.5,
		LPGColour:              0.5,
	}
}

// Modulations is the per-block control snapshot. Each *Patched flag selects
// the matching external value over the voice's internal source.
type Modulations struct {
	Engine    float64
	Note      float64
	Frequency float64
	Harmonics float64
	Timbre    float64
	Morph     float64
	Trigger   float64
	Level     float64

	FrequencyPatched bool
	HarmonicsPatched bool
	TimbrePatched    bool
	MorphPatched     bool
	TriggerPatched   bool
	LevelPatched     bool

	// Insert configures the audio-rate modulation stages. Input buffers
	// cover the whole Render call; the second stage also offers the vocoder.
	Insert [2]modulation.StageParams
}

// Frame is one output sample on each channel.
type Frame struct {
	Out    int16
	Aux    int16
	OutDry int16
	AuxDry int16
}
