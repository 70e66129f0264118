// Package delay provides a fixed-capacity circular delay line.
//
// A Line backs two things in the voice: the trigger delay, which holds one
// sample per block, and the string engine's waveguide, which reads between
// samples.
package delay

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-macrosynth/dsp/interp"
)

// ErrEmpty is returned when a line would have no storage.
var ErrEmpty = errors.New("delay: line needs at least one sample of storage")

// Line is a circular delay line. Read(1) returns the most recently written
// sample, Read(n) the sample written n-1 writes earlier.
type Line struct {
	data []float64
	head int
}

// New allocates a line holding size samples.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, ErrEmpty
	}

	return &Line{data: make([]float64, size)}, nil
}

// NewFromBuffer builds a line over caller-owned storage, typically a slice
// carved from a buffer.Arena. The storage is cleared.
func NewFromBuffer(storage []float64) (*Line, error) {
	if len(storage) == 0 {
		return nil, ErrEmpty
	}

	l := &Line{data: storage}
	l.Reset()

	return l, nil
}

// Len returns the capacity in samples.
func (l *Line) Len() int { return len(l.data) }

// Write pushes one sample, overwriting the oldest.
func (l *Line) Write(x float64) {
	l.data[l.head] = x
	if l.head++; l.head == len(l.data) {
		l.head = 0
	}
}

// Read returns the sample delay writes back. Delays outside [0, Len] wrap.
func (l *Line) Read(delay int) float64 {
	n := len(l.data)
	i := (l.head - delay%n) % n
	if i < 0 {
		i += n
	}

	return l.data[i]
}

// ReadFractional interpolates between samples with a 4-point Hermite
// kernel. The delay is clamped to [2, Len-2] so every tap lies in written
// history. Lines shorter than four samples fall back to Read.
func (l *Line) ReadFractional(delay float64) float64 {
	n := len(l.data)
	if n < 4 {
		return l.Read(int(delay))
	}

	hi := float64(n - 2)
	switch {
	case math.IsNaN(delay) || delay > hi:
		delay = hi
	case delay < 2:
		delay = 2
	}

	whole := math.Floor(delay)
	p := int(whole)

	return interp.Hermite4(delay-whole, l.Read(p-1), l.Read(p), l.Read(p+1), l.Read(p+2))
}

// Reset zeroes the history.
func (l *Line) Reset() {
	clear(l.data)
	l.head = 0
}
