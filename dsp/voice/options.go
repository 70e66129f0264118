package voice

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/engine"
	"github.com/cwbudde/algo-macrosynth/dsp/engines"
	"github.com/cwbudde/algo-macrosynth/dsp/userdata"
)

const (
	// MaxBlockSize is the largest accepted block size.
	MaxBlockSize = 512
	// TriggerDelayCapacity is the depth of the trigger delay line.
	TriggerDelayCapacity = 8
	// DefaultTriggerDelay is the trigger delay in blocks.
	DefaultTriggerDelay = 5
	// DefaultArenaSize is the arena New creates when given none. It fits
	// the built-in engines at MaxBlockSize.
	DefaultArenaSize = 1 << 14
)

// ErrNoEngines is returned when the engine set registers nothing.
var ErrNoEngines = errors.New("voice: no engines registered")

// Option configures a Voice at construction time.
type Option func(*config) error

type config struct {
	processor    core.ProcessorConfig
	provider     userdata.Provider
	engineSet    func(*engine.Registry) error
	triggerDelay int
}

func defaultConfig() config {
	return config{
		processor:    core.DefaultProcessorConfig(),
		engineSet:    engines.RegisterDefaults,
		triggerDelay: DefaultTriggerDelay,
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return processorOption(core.WithSampleRate(sampleRate))
}

// WithBlockSize sets the number of frames rendered per block, at most
// MaxBlockSize.
func WithBlockSize(blockSize int) Option {
	return processorOption(core.WithBlockSize(blockSize))
}

// processorOption applies opt and validates the result right away, so the
// failing option is the one reported.
func processorOption(opt core.ProcessorOption) Option {
	return func(cfg *config) error {
		opt(&cfg.processor)
		if err := cfg.processor.Validate(MaxBlockSize); err != nil {
			return fmt.Errorf("voice: %w", err)
		}
		return nil
	}
}

// WithUserData sets the provider engines load their data from on a switch
// or reload. A nil provider leaves every slot empty.
func WithUserData(p userdata.Provider) Option {
	return func(cfg *config) error {
		cfg.provider = p
		return nil
	}
}

// WithEngineSet replaces the built-in engines. register is called once with
// an empty registry.
func WithEngineSet(register func(*engine.Registry) error) Option {
	return func(cfg *config) error {
		if register == nil {
			return errors.New("voice: nil engine set")
		}
		cfg.engineSet = register
		return nil
	}
}

// WithTriggerDelay sets how many blocks the trigger is delayed by.
func WithTriggerDelay(blocks int) Option {
	return func(cfg *config) error {
		if blocks < 1 || blocks > TriggerDelayCapacity {
			return fmt.Errorf("voice: trigger delay must be in [1, %d]: %d", TriggerDelayCapacity, blocks)
		}
		cfg.triggerDelay = blocks
		return nil
	}
}
