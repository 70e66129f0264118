// Package postprocess turns an engine's floating-point block into quantized
// output samples: optional limiting, then either the low-pass gate or a
// direct quantizer.
package postprocess

import (
	"github.com/cwbudde/algo-macrosynth/dsp/core"
	"github.com/cwbudde/algo-macrosynth/dsp/effects"
	"github.com/cwbudde/algo-macrosynth/dsp/lpg"
	"github.com/cwbudde/algo-vecmath"
)

// FullScale is the magnitude of the quantization scale at unit gain. The
// scale is negative: output polarity is inverted.
const FullScale = 32767

// Channel post-processes one output channel.
type Channel struct {
	limiter  *effects.Limiter
	outgoing *effects.Limiter
	gate     *lpg.LowPassGate
}

// NewChannel returns a channel in its reset state.
func NewChannel() *Channel {
	return &Channel{
		limiter:  effects.NewLimiter(),
		outgoing: effects.NewLimiter(),
		gate:     lpg.New(),
	}
}

// Reset clears limiter and gate state.
func (c *Channel) Reset() {
	c.limiter.Reset()
	c.outgoing.Reset()
	c.gate.Reset()
}

// Crossfade blends the block of an outgoing engine (prev, rendered at
// prevGain) into the block of the incoming one (in, rendered at gain),
// leaving the result in in at unit gain. Process it with a gain of 1.
//
// Each side is brought to unit gain on its own: a negative gain runs it
// through a limiter, a positive one scales it. The outgoing side keeps the
// limiter history this channel has built so far, and the incoming side
// continues from a copy of it, so neither level jumps at the switch. up and
// down are the fade-in and fade-out ramps. prev is modified.
func (c *Channel) Crossfade(gain, prevGain float64, in, prev, up, down []float64) {
	*c.outgoing = *c.limiter

	normalize(c.limiter, gain, in)
	normalize(c.outgoing, prevGain, prev)

	vecmath.MulBlockInPlace(in, up)
	vecmath.MulBlockInPlace(prev, down)
	vecmath.AddBlockInPlace(in, prev)
}

func normalize(l *effects.Limiter, gain float64, buf []float64) {
	if gain < 0 {
		l.ProcessInPlace(-gain, buf)
		return
	}

	vecmath.ScaleBlock(buf, buf, gain)
}

// Process writes len(in) samples to out[0], out[stride], ...
//
// A negative gain runs in through the limiter at -gain first, and the
// quantization scale is then taken at unit magnitude. With bypass set the
// gate parameters are ignored and each sample is quantized directly. in is
// modified when the limiter runs.
func (c *Channel) Process(gain float64, bypass bool, lpgGain, lpgFrequency, lpgHFBleed float64,
	in []float64, out []int16, stride int,
) {
	if gain < 0 {
		c.limiter.ProcessInPlace(-gain, in)
	}

	scale := -float64(FullScale)
	if gain >= 0 {
		scale *= gain
	}

	if bypass {
		if stride <= 0 {
			stride = 1
		}
		for i, x := range in {
			j := i * stride
			if j >= len(out) {
				break
			}
			out[j] = core.Quantize16(x * scale)
		}
		return
	}

	c.gate.Process(scale*lpgGain, lpgFrequency, lpgHFBleed, in, out, stride)
}
