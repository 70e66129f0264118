package engine

import (
	"errors"
	"fmt"
)

// MaxEngines is the registry capacity.
const MaxEngines = 24

var (
	// ErrRegistryFull is returned when registering beyond MaxEngines.
	ErrRegistryFull = errors.New("engine: registry full")
	// ErrNilEngine is returned when registering a nil engine.
	ErrNilEngine = errors.New("engine: nil engine")
)

// PostProcessingSettings describes how a voice treats an engine's output.
// A negative gain routes the channel through the limiter at -gain.
type PostProcessingSettings struct {
	OutGain          float64
	AuxGain          float64
	AlreadyEnveloped bool
}

// Registry holds up to MaxEngines engines in registration order.
type Registry struct {
	engines  [MaxEngines]Engine
	settings [MaxEngines]PostProcessingSettings
	count    int
}

// Register appends e with its post-processing settings.
func (r *Registry) Register(e Engine, alreadyEnveloped bool, outGain, auxGain float64) error {
	if e == nil {
		return ErrNilEngine
	}
	if r.count >= MaxEngines {
		return fmt.Errorf("%w: %d engines", ErrRegistryFull, MaxEngines)
	}

	r.engines[r.count] = e
	r.settings[r.count] = PostProcessingSettings{
		OutGain:          outGain,
		AuxGain:          auxGain,
		AlreadyEnveloped: alreadyEnveloped,
	}
	r.count++

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(e Engine, alreadyEnveloped bool, outGain, auxGain float64) {
	if err := r.Register(e, alreadyEnveloped, outGain, auxGain); err != nil {
		panic(err)
	}
}

// Get returns the engine at index i, or nil when i is out of range.
func (r *Registry) Get(i int) Engine {
	if i < 0 || i >= r.count {
		return nil
	}
	return r.engines[i]
}

// Settings returns the post-processing settings of engine i.
func (r *Registry) Settings(i int) PostProcessingSettings {
	if i < 0 || i >= r.count {
		return PostProcessingSettings{}
	}
	return r.settings[i]
}

// Len returns the number of registered engines.
func (r *Registry) Len() int {
	return r.count
}

// Each calls fn for every engine in index order and stops at the first
// error.
func (r *Registry) Each(fn func(i int, e Engine) error) error {
	for i := 0; i < r.count; i++ {
		if err := fn(i, r.engines[i]); err != nil {
			return err
		}
	}
	return nil
}
