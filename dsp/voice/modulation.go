package voice

import (
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/core"
)

const (
	modulationDeadband = 0.05
	modulationMakeup   = 1.05
)

// modulationDepth reshapes a user depth so that |amount| <= 0.05 has no
// effect and ±1 still reaches 0.9975.
func modulationDepth(amount float64) float64 {
	a := math.Abs(amount)
	if !(a > modulationDeadband) {
		return 0
	}
	return amount * math.Max(a-modulationDeadband, modulationDeadband) * modulationMakeup
}

// applyModulation is the rule every modulated parameter goes through. The
// source is the external value when patched, else the envelope when asked
// for, else fallback. The result is clamped to [lo, hi].
func applyModulation(base, amount float64, useExternal bool, external float64,
	useEnvelope bool, envelope, fallback, lo, hi float64,
) float64 {
	source := fallback
	switch {
	case useExternal:
		source = external
	case useEnvelope:
		source = envelope
	}

	value := base
	if depth := modulationDepth(amount); depth != 0 {
		value += depth * source
	}
	if math.IsNaN(value) {
		return lo
	}
	return core.Clamp(value, lo, hi)
}
