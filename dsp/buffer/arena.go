package buffer

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when an allocation does not fit the arena.
var ErrExhausted = errors.New("buffer arena exhausted")

// Arena is a bump allocator over one preallocated float64 block.
//
// Slices handed out by Allocate alias the arena and stay valid until Free;
// after Free the same memory is handed out again.
type Arena struct {
	samples []float64
	offset  int
}

// NewArena reserves capacity samples.
func NewArena(capacity int) (*Arena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("arena capacity must be > 0: %d", capacity)
	}
	return &Arena{samples: make([]float64, capacity)}, nil
}

// FromSlice builds an arena on caller-owned memory without copying.
func FromSlice(s []float64) *Arena {
	return &Arena{samples: s}
}

// Allocate returns a zeroed slice of n samples.
func (a *Arena) Allocate(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("allocation size must be >= 0: %d", n)
	}
	if a.offset+n > len(a.samples) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrExhausted, n, len(a.samples)-a.offset)
	}

	s := a.samples[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	for i := range s {
		s[i] = 0
	}
	return s, nil
}

// Free releases every allocation at once.
func (a *Arena) Free() {
	a.offset = 0
}

// Used returns the number of allocated samples.
func (a *Arena) Used() int {
	return a.offset
}

// Remaining returns the number of samples still available.
func (a *Arena) Remaining() int {
	return len(a.samples) - a.offset
}

// Cap returns the arena capacity in samples.
func (a *Arena) Cap() int {
	return len(a.samples)
}
