package modulation

import (
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/core"
)

const (
	maxFoldGain     = 4.0
	maxDiodeVoltage = 0.3
	maxRingDrive    = 3.0
	maxDucking      = 8.0
)

// crossfade blends carrier towards modulator as amount goes from 0 to 1.
func crossfade(carrier, modulator, amount float64) float64 {
	return carrier + (modulator-carrier)*amount
}

// fold sums both signals and folds the result back into [-1, 1].
func fold(carrier, modulator, amount float64) float64 {
	x := (carrier + modulator) * (1 + amount*maxFoldGain)
	// Triangle folder with period 4.
	x = math.Mod(x+1, 4)
	if x < 0 {
		x += 4
	}
	if x > 2 {
		x = 4 - x
	}
	return x - 1
}

// diode is a square-law diode with a conduction threshold.
func diode(x, threshold float64) float64 {
	if x <= threshold {
		return 0
	}
	d := x - threshold
	return d * d
}

// analogRingMod models a four-diode ring. With a zero threshold it reduces
// to carrier*modulator; raising the threshold adds crossover distortion.
func analogRingMod(carrier, modulator, amount float64) float64 {
	v := amount * maxDiodeVoltage
	sum := carrier + modulator
	diff := carrier - modulator
	ring := 0.25 * (diode(sum, v) + diode(-sum, v) - diode(diff, v) - diode(-diff, v))
	return core.SoftClip(ring)
}

func digitalRingMod(carrier, modulator, amount float64) float64 {
	return core.SoftClip(carrier * modulator * (1 + amount*maxRingDrive))
}

// xor combines the 16-bit representations of both signals bitwise and
// blends the result against the carrier.
func xor(carrier, modulator, amount float64) float64 {
	a := int16(core.Clamp(carrier, -1, 1) * 32767)
	b := int16(core.Clamp(modulator, -1, 1) * 32767)
	x := float64(a^b) / 32768
	return crossfade(carrier, x, amount)
}
