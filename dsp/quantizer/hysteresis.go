// Package quantizer maps continuous control values to discrete indices.
package quantizer

import (
	"fmt"
	"math"
)

// Hysteresis quantizes a continuous value to [0, steps) and resists
// toggling near the decision boundaries: once index i is selected the input
// must pass the boundary by more than the hysteresis band before i±1 is
// reported.
type Hysteresis struct {
	steps      int
	hysteresis float64
	scale      float64
	offset     float64
	quantized  int
}

// NewHysteresis builds a quantizer with steps outputs. hysteresis is the
// band width in output units and must lie in [0, 0.5).
//
// With symmetric set, input 0 and 1 map to the centers of the first and
// last step; otherwise [0, 1] is split into steps equal cells.
func NewHysteresis(steps int, hysteresis float64, symmetric bool) (*Hysteresis, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("quantizer steps must be > 0: %d", steps)
	}
	if hysteresis < 0 || hysteresis >= 0.5 || math.IsNaN(hysteresis) {
		return nil, fmt.Errorf("quantizer hysteresis must be in [0, 0.5): %g", hysteresis)
	}

	q := &Hysteresis{steps: steps, hysteresis: hysteresis}
	if symmetric {
		q.scale = float64(steps - 1)
	} else {
		q.scale = float64(steps)
		q.offset = -0.5
	}
	return q, nil
}

// Process quantizes value (nominally [0, 1]) offset by base whole steps.
func (q *Hysteresis) Process(base int, value float64) int {
	if math.IsNaN(value) {
		return q.quantized
	}

	value = value*q.scale + q.offset + float64(base)

	h := q.hysteresis
	if value > float64(q.quantized) {
		h = -h
	}

	idx := math.Floor(value + h + 0.5)
	switch {
	case idx < 0:
		q.quantized = 0
	case idx > float64(q.steps-1):
		q.quantized = q.steps - 1
	default:
		q.quantized = int(idx)
	}
	return q.quantized
}

// Quantized returns the last reported index.
func (q *Hysteresis) Quantized() int {
	return q.quantized
}

// Steps returns the number of output indices.
func (q *Hysteresis) Steps() int {
	return q.steps
}

// Reset forgets the last decision.
func (q *Hysteresis) Reset() {
	q.quantized = 0
}
