package core

import (
	"fmt"
	"math"
)

// ProcessorConfig holds the rate settings a voice and its components are
// built for.
type ProcessorConfig struct {
	SampleRate float64
	// BlockSize is the largest block rendered in one pass. Working buffers
	// are sized to it once, at construction.
	BlockSize int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the settings of the reference hardware.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  24,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.SampleRate = sampleRate
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.BlockSize = blockSize
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
// The result is not validated.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate checks that the sample rate is finite and positive and that the
// block size lies in [1, maxBlockSize].
func (c ProcessorConfig) Validate(maxBlockSize int) error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0: %f", c.SampleRate)
	}
	if c.BlockSize < 1 || c.BlockSize > maxBlockSize {
		return fmt.Errorf("block size must be in [1, %d]: %d", maxBlockSize, c.BlockSize)
	}
	return nil
}
