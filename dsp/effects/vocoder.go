package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/filter/svf"
)

// Bark band centres in Hz. Bands at or above 0.45 times the sample rate
// are dropped.
var barkFrequencies = [...]float64{
	100, 200, 300, 400, 510, 630, 770, 920, 1080, 1270, 1480, 1720, 2000,
	2320, 2700, 3150, 3700, 4400, 5300, 6400, 7700, 9500, 12000, 15500,
}

const (
	maxVocoderBands = len(barkFrequencies)

	defaultVocoderAttackMs  = 0.5
	defaultVocoderReleaseMs = 10.0

	minVocoderTimeMs = 0.01
	maxVocoderTimeMs = 1000.0
)

// VocoderOption configures a Vocoder at construction time.
type VocoderOption func(*Vocoder) error

// WithVocoderAttack sets the envelope follower attack in milliseconds.
func WithVocoderAttack(ms float64) VocoderOption {
	return func(v *Vocoder) error {
		if err := validateVocoderTime("attack", ms); err != nil {
			return err
		}
		v.attackMs = ms
		return nil
	}
}

// WithVocoderRelease sets the envelope follower release in milliseconds.
func WithVocoderRelease(ms float64) VocoderOption {
	return func(v *Vocoder) error {
		if err := validateVocoderTime("release", ms); err != nil {
			return err
		}
		v.releaseMs = ms
		return nil
	}
}

// Vocoder is a channel vocoder on Bark-spaced bands. Each band of the
// modulator drives an envelope follower that sets the level of the same
// band of the carrier. Only the vocoded signal is output.
type Vocoder struct {
	sampleRate float64
	numBands   int

	analysis  [maxVocoderBands]svf.Filter
	synthesis [maxVocoderBands]svf.Filter
	envelopes [maxVocoderBands]float64

	attackMs     float64
	releaseMs    float64
	attackCoeff  float64
	releaseCoeff float64
}

// NewVocoder builds a vocoder for sampleRate.
func NewVocoder(sampleRate float64, opts ...VocoderOption) (*Vocoder, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("vocoder: sample rate must be > 0: %f", sampleRate)
	}

	v := &Vocoder{
		sampleRate: sampleRate,
		attackMs:   defaultVocoderAttackMs,
		releaseMs:  defaultVocoderReleaseMs,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	for i, f := range barkFrequencies {
		if f >= 0.45*sampleRate {
			break
		}
		q := barkQ(i)
		v.analysis[i].SetFQ(f/sampleRate, q)
		v.synthesis[i].SetFQ(f/sampleRate, q)
		v.numBands++
	}
	if v.numBands == 0 {
		return nil, fmt.Errorf("vocoder: no bands below Nyquist at %g Hz", sampleRate)
	}

	v.attackCoeff = 1 - math.Exp(-1/(v.attackMs*0.001*sampleRate))
	v.updateRelease()
	return v, nil
}

// barkQ spans band i from the midpoint with its lower neighbour to the
// midpoint with its upper one.
func barkQ(i int) float64 {
	f := barkFrequencies[i]
	lower := 0.5 * f
	if i > 0 {
		lower = 0.5 * (barkFrequencies[i-1] + f)
	}
	upper := 1.25 * f
	if i < maxVocoderBands-1 {
		upper = 0.5 * (f + barkFrequencies[i+1])
	}
	return f / (upper - lower)
}

func (v *Vocoder) updateRelease() {
	v.releaseCoeff = math.Exp(-1 / (v.releaseMs * 0.001 * v.sampleRate))
}

// ProcessSample vocodes one carrier sample with one modulator sample.
func (v *Vocoder) ProcessSample(modulator, carrier float64) float64 {
	out := 0.0
	for i := 0; i < v.numBands; i++ {
		level := math.Abs(v.analysis[i].Process(svf.ModeBandPassNormalized, modulator))
		env := v.envelopes[i]
		if level > env {
			env += (level - env) * v.attackCoeff
		} else {
			env = level + (env-level)*v.releaseCoeff
		}
		v.envelopes[i] = env
		out += env * v.synthesis[i].Process(svf.ModeBandPassNormalized, carrier)
	}
	return out
}

// ProcessBlock vocodes carrier with modulator into out. All slices must
// have the same length.
func (v *Vocoder) ProcessBlock(modulator, carrier, out []float64) error {
	if len(modulator) != len(carrier) || len(carrier) != len(out) {
		return fmt.Errorf("vocoder: block length mismatch: %d, %d, %d",
			len(modulator), len(carrier), len(out))
	}
	for i := range out {
		out[i] = v.ProcessSample(modulator[i], carrier[i])
	}
	return nil
}

// SetRelease changes the envelope release in milliseconds. It does not
// allocate and may be called between samples.
func (v *Vocoder) SetRelease(ms float64) error {
	if err := validateVocoderTime("release", ms); err != nil {
		return err
	}
	v.releaseMs = ms
	v.updateRelease()
	return nil
}

// SetReleaseClamped is SetRelease for control-rate callers: ms is clamped
// to the accepted range, and NaN selects the shortest release.
func (v *Vocoder) SetReleaseClamped(ms float64) {
	if math.IsNaN(ms) {
		ms = minVocoderTimeMs
	}
	v.releaseMs = min(max(ms, minVocoderTimeMs), maxVocoderTimeMs)
	v.updateRelease()
}

// Release returns the envelope release in milliseconds.
func (v *Vocoder) Release() float64 { return v.releaseMs }

// NumBands returns the number of bands below Nyquist.
func (v *Vocoder) NumBands() int { return v.numBands }

// Reset clears filter and envelope state.
func (v *Vocoder) Reset() {
	for i := 0; i < v.numBands; i++ {
		v.analysis[i].Reset()
		v.synthesis[i].Reset()
		v.envelopes[i] = 0
	}
}

func validateVocoderTime(name string, ms float64) error {
	if !(ms >= minVocoderTimeMs && ms <= maxVocoderTimeMs) {
		return fmt.Errorf("vocoder: %s must be in [%g, %g] ms: %g", name, minVocoderTimeMs, maxVocoderTimeMs, ms)
	}
	return nil
}
