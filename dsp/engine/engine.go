// Package engine defines the contract every synthesis engine implements and
// the fixed-capacity registry a voice selects engines from.
package engine

import "github.com/cwbudde/algo-macrosynth/dsp/buffer"

// Trigger is the per-block trigger state seen by an engine.
type Trigger int

const (
	// TriggerUnpatched means no trigger source is connected; engines run
	// free.
	TriggerUnpatched Trigger = iota
	TriggerLow
	TriggerRisingEdge
)

// Parameters is the fully modulated and clamped parameter set handed to an
// engine for one block.
type Parameters struct {
	Trigger Trigger

	// Note in semitones, in [-119, 120].
	Note float64

	// Macro controls in [0, 1].
	Harmonics float64
	Timbre    float64
	Morph     float64

	// Accent in [0, 1.3).
	Accent float64
}

// Engine is one synthesis algorithm.
//
// Init is called once before any other method and may allocate working
// buffers from arena. Render must not allocate or block; it fills out and
// aux (equal length, at most the voice block size) and reports whether it
// already applied its own amplitude envelope.
type Engine interface {
	Init(arena *buffer.Arena, sampleRate float64) error
	Reset()
	LoadUserData(data []byte)
	Render(p *Parameters, out, aux []float64) bool
}
