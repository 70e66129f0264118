package interp

// Ramp moves a control value linearly from its previous block value to a new
// target over one block, so per-block parameters never step mid-signal.
//
// The state lives in the caller-owned *float64, which is left at the target
// once the block has been consumed.
type Ramp struct {
	state     *float64
	value     float64
	increment float64
}

// NewRamp starts a ramp from *state to target over size samples.
func NewRamp(state *float64, target float64, size int) Ramp {
	r := Ramp{state: state, value: *state}
	if size > 0 {
		r.increment = (target - *state) / float64(size)
	} else {
		r.value = target
	}
	*state = target
	return r
}

// Next advances the ramp by one sample.
func (r *Ramp) Next() float64 {
	r.value += r.increment
	return r.value
}

// Value returns the current ramp value without advancing.
func (r *Ramp) Value() float64 {
	return r.value
}
