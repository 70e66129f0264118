package effects

import "github.com/cwbudde/algo-macrosynth/dsp/core"

const (
	limiterInitialPeak = 0.5
	limiterAttack      = 0.05
	limiterRelease     = 0.00002
	limiterHeadroom    = 0.8
)

// Limiter is a soft peak limiter for engines whose native output can exceed
// full scale. A peak follower with fast attack and very slow release scales
// the signal back under unity, and a soft saturator rounds off what remains.
type Limiter struct {
	peak float64
}

// NewLimiter creates a new limiter instance.
func NewLimiter() *Limiter {
	l := &Limiter{}
	l.Reset()
	return l
}

// ProcessInPlace applies preGain and limits buf in place.
func (l *Limiter) ProcessInPlace(preGain float64, buf []float64) {
	peak := l.peak
	for i, x := range buf {
		s := x * preGain

		a := s
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak += (a - peak) * limiterAttack
		} else {
			peak += (a - peak) * limiterRelease
		}

		gain := 1.0
		if peak > 1 {
			gain = 1 / peak
		}
		buf[i] = core.SoftClip(s * gain * limiterHeadroom)
	}
	l.peak = core.FlushDenormals(peak)
}

// Peak returns the current peak follower level.
func (l *Limiter) Peak() float64 {
	return l.peak
}

// Reset clears the internal state.
func (l *Limiter) Reset() {
	l.peak = limiterInitialPeak
}
