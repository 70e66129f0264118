package envelope

// Decay is an exponential decay restarted by triggers. Its value lies in [0, 1].
type Decay struct {
	value float64
}

// Trigger restarts the envelope at full level.
func (d *Decay) Trigger() {
	d.value = 1
}

// Process advances one block; rate is the fraction of the current value lost
// per block and is clamped to [0, 1].
func (d *Decay) Process(rate float64) {
	if rate < 0 {
		rate = 0
	} else if rate > 1 {
		rate = 1
	}
	d.value -= d.value * rate
}

// Value returns the current level.
func (d *Decay) Value() float64 {
	return d.value
}

// Reset silences the envelope.
func (d *Decay) Reset() {
	d.value = 0
}
