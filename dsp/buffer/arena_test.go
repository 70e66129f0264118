package buffer

import (
	"errors"
	"testing"
)

func TestNewArenaValidation(t *testing.T) {
	if _, err := NewArena(0); err == nil {
		t.Fatal("expected error for zero capacity")
	}
	if _, err := NewArena(-4); err == nil {
		t.Fatal("expected error for negative capacity")
	}
}

func TestAllocateAdvancesCursor(t *testing.T) {
	a, err := NewArena(16)
	if err != nil {
		t.Fatal(err)
	}

	first, err := a.Allocate(4)
	if err != nil {
		t.Fatalf("Allocate(4) error = %v", err)
	}
	second, err := a.Allocate(8)
	if err != nil {
		t.Fatalf("Allocate(8) error = %v", err)
	}

	if len(first) != 4 || len(second) != 8 {
		t.Fatalf("lengths = %d, %d, want 4, 8", len(first), len(second))
	}
	if a.Used() != 12 || a.Remaining() != 4 {
		t.Fatalf("Used() = %d, Remaining() = %d, want 12, 4", a.Used(), a.Remaining())
	}

	first[3] = 7
	if second[0] != 0 {
		t.Fatal("allocations must not overlap")
	}
}

func TestAllocateCapacityIsBounded(t *testing.T) {
	a, _ := NewArena(8)
	s, _ := a.Allocate(4)
	if cap(s) != 4 {
		t.Fatalf("cap = %d, want 4", cap(s))
	}
	// append must not spill into the next allocation.
	s = append(s, 1)
	next, _ := a.Allocate(4)
	if next[0] != 0 {
		t.Fatal("append wrote into neighbouring allocation")
	}
	_ = s
}

func TestAllocateExhausted(t *testing.T) {
	a, _ := NewArena(4)
	if _, err := a.Allocate(5); !errors.Is(err, ErrExhausted) {
		t.Fatalf("Allocate(5) error = %v, want ErrExhausted", err)
	}
	if _, err := a.Allocate(-1); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestFreeReusesAndZeroes(t *testing.T) {
	a, _ := NewArena(4)
	s, _ := a.Allocate(4)
	for i := range s {
		s[i] = float64(i + 1)
	}

	a.Free()
	if a.Used() != 0 {
		t.Fatalf("Used() = %d after Free, want 0", a.Used())
	}

	again, err := a.Allocate(4)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range again {
		if v != 0 {
			t.Fatalf("again[%d] = %v, want 0", i, v)
		}
	}
}

func TestFromSliceSharesMemory(t *testing.T) {
	backing := make([]float64, 3)
	a := FromSlice(backing)
	s, err := a.Allocate(3)
	if err != nil {
		t.Fatal(err)
	}
	s[1] = 42
	if backing[1] != 42 {
		t.Fatal("FromSlice should share underlying memory")
	}
	if a.Cap() != 3 {
		t.Fatalf("Cap() = %d, want 3", a.Cap())
	}
}
