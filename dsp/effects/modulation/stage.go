package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/delay"
	"github.com/cwbudde/algo-macrosynth/dsp/effects"
)

const (
	MinGain = 1.0
	MaxGain = 10.0

	fmLineSize = 64
	fmMaxDepth = 24.0

	compressorAttack  = 0.01
	compressorRelease = 0.0005

	minVocoderReleaseMs = 5.0
	maxVocoderReleaseMs = 205.0
)

// StageParams describes one insert stage for one block. A nil Input
// disables the stage.
type StageParams struct {
	Input  []float64
	Mode   Mode
	Gain   float64
	Level  float64
	Timbre float64
}

type channel struct {
	line     *delay.Line
	follower float64
	vocoder  *effects.Vocoder
	release  float64
}

// Stage applies one modulation algorithm to the main and auxiliary wet
// buffers. State is kept per channel.
type Stage struct {
	allowVocoder bool
	channels     [2]channel
}

// NewStage creates a stage. Only stages built with allowVocoder accept
// ModeVocoder; others clamp it to ModeFrequencyModulation.
func NewStage(sampleRate float64, allowVocoder bool) (*Stage, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("modulation: sample rate must be > 0: %f", sampleRate)
	}

	s := &Stage{allowVocoder: allowVocoder}
	for i := range s.channels {
		line, err := delay.New(fmLineSize)
		if err != nil {
			return nil, err
		}
		s.channels[i].line = line

		if allowVocoder {
			v, err := effects.NewVocoder(sampleRate)
			if err != nil {
				return nil, fmt.Errorf("modulation: %w", err)
			}
			s.channels[i].vocoder = v
			s.channels[i].release = v.Release()
		}
	}
	return s, nil
}

// Process transforms out and aux in place. Both buffers and p.Input are
// processed over the shortest common length.
func (s *Stage) Process(p *StageParams, out, aux []float64) {
	if p == nil || p.Input == nil {
		return
	}
	mode := clampMode(p.Mode, s.allowVocoder)
	if mode == ModeOff {
		return
	}

	gain := core.Clamp(p.Gain, MinGain, MaxGain)
	level := core.Clamp(p.Level, 0, 1)
	timbre := core.Clamp(p.Timbre, 0, 1)

	s.channels[0].process(mode, p.Input, gain, level, timbre, out)
	s.channels[1].process(mode, p.Input, gain, level, timbre, aux)
}

// Reset clears all per-channel state.
func (s *Stage) Reset() {
	for i := range s.channels {
		c := &s.channels[i]
		c.line.Reset()
		c.follower = 0
		if c.vocoder != nil {
			c.vocoder.Reset()
		}
	}
}

func (c *channel) process(mode Mode, input []float64, gain, level, timbre float64, buf []float64) {
	n := min(len(input), len(buf))

	if mode == ModeVocoder {
		release := minVocoderReleaseMs + timbre*(maxVocoderReleaseMs-minVocoderReleaseMs)
		if release != c.release {
			c.vocoder.SetReleaseClamped(release)
			c.release = release
		}
	}

	for i := 0; i < n; i++ {
		m := core.SoftClip(input[i]*gain) * level
		x := buf[i]

		switch mode {
		case ModeCrossfade:
			x = crossfade(x, m, timbre)
		case ModeFold:
			x = fold(x, m, timbre)
		case ModeAnalogRingMod:
			x = analogRingMod(x, m, timbre)
		case ModeDigitalRingMod:
			x = digitalRingMod(x, m, timbre)
		case ModeXOR:
			x = xor(x, m, timbre)
		case ModeCompressor:
			x = c.compress(x, m, timbre)
		case ModeFrequencyModulation:
			c.line.Write(x)
			x = c.line.ReadFractional(2 + (1+m)*timbre*fmMaxDepth*0.5)
		case ModeVocoder:
			x = c.vocoder.ProcessSample(m, x)
		}
		buf[i] = x
	}
	c.follower = core.FlushDenormals(c.follower)
}

// compress ducks the carrier by the modulator's envelope.
func (c *channel) compress(carrier, modulator, amount float64) float64 {
	a := math.Abs(modulator)
	if a > c.follower {
		c.follower += (a - c.follower) * compressorAttack
	} else {
		c.follower += (a - c.follower) * compressorRelease
	}
	return carrier / (1 + amount*maxDucking*c.follower)
}

// Insert chains two stages: the first offers every mode up to frequency
// modulation, the second adds the vocoder.
type Insert struct {
	stages [2]*Stage
}

// NewInsert creates a two-stage insert.
func NewInsert(sampleRate float64) (*Insert, error) {
	first, err := NewStage(sampleRate, false)
	if err != nil {
		return nil, err
	}
	second, err := NewStage(sampleRate, true)
	if err != nil {
		return nil, err
	}
	return &Insert{stages: [2]*Stage{first, second}}, nil
}

// Process runs both stages in order over out and aux.
func (ins *Insert) Process(params *[2]StageParams, out, aux []float64) {
	if params == nil {
		return
	}
	for i, s := range ins.stages {
		s.Process(&params[i], out, aux)
	}
}

// Reset clears both stages.
func (ins *Insert) Reset() {
	for _, s := range ins.stages {
		s.Reset()
	}
}
