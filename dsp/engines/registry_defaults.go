package engines

import (
	"fmt"

	"github.com/cwbudde/algo-macrosynth/dsp/engine"
)

// Names lists the built-in engines in registration order.
var Names = [...]string{
	"virtual-analog",
	"waveshaping",
	"fm",
	"wavetable",
	"noise",
	"string",
	"bass-drum",
}

// RegisterDefaults registers a fresh instance of every built-in engine, in
// the order of Names, with its post-processing settings.
func RegisterDefaults(r *engine.Registry) error {
	defaults := []struct {
		e                engine.Engine
		alreadyEnveloped bool
		outGain, auxGain float64
	}{
		{&VirtualAnalog{}, false, 0.8, 0.8},
		{&Waveshaping{}, false, 0.7, 0.6},
		{&FM{}, false, 0.6, 0.6},
		{&Wavetable{}, false, 0.6, 0.6},
		{&Noise{}, false, -1.0, -1.0},
		{&String{}, true, -1.0, 0.8},
		{&BassDrum{}, true, 0.8, 0.8},
	}

	for i, d := range defaults {
		if err := r.Register(d.e, d.alreadyEnveloped, d.outGain, d.auxGain); err != nil {
			return fmt.Errorf("engines: register %s: %w", Names[i], err)
		}
	}
	return nil
}

// Index returns the registration index of a built-in engine name.
func Index(name string) (int, error) {
	for i, n := range Names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("engines: unknown engine %q", name)
}
