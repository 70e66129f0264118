package engines

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const twoPi = 2 * math.Pi

func validateSampleRate(name string, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%s: sample rate must be > 0: %f", name, sampleRate)
	}
	return nil
}

// phasor is a normalized phase accumulator in [0, 1).
type phasor struct {
	phase float64
}

func (p *phasor) next(frequency float64) float64 {
	p.phase += frequency
	if p.phase >= 1 {
		p.phase -= math.Floor(p.phase)
	}
	return p.phase
}

// polyBLEP is the two-sample polynomial band-limited step residual.
func polyBLEP(t, dt float64) float64 {
	switch {
	case dt <= 0:
		return 0
	case t < dt:
		t /= dt
		return t + t - t*t - 1
	case t > 1-dt:
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

func bandLimitedSaw(t, dt float64) float64 {
	return 2*t - 1 - polyBLEP(t, dt)
}

func bandLimitedPulse(t, dt, width float64) float64 {
	v := -1.0
	if t < width {
		v = 1
	}
	t2 := t - width
	if t2 < 0 {
		t2++
	}
	return v + polyBLEP(t, dt) - polyBLEP(t2, dt)
}

// noiseSource is a reseedable white noise generator.
type noiseSource struct {
	pcg  *rand.PCG
	rng  *rand.Rand
	seed uint64
}

func newNoiseSource(seed uint64) noiseSource {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return noiseSource{pcg: pcg, rng: rand.New(pcg), seed: seed}
}

func (n *noiseSource) reset() {
	n.pcg.Seed(n.seed, n.seed^0x9e3779b97f4a7c15)
}

// bipolar returns uniform noise in [-1, 1).
func (n *noiseSource) bipolar() float64 {
	return 2*n.rng.Float64() - 1
}
