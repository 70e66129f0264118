package delay

import (
	"errors"
	"math"
	"testing"
)

func filled(t *testing.T, size, writes int) *Line {
	t.Helper()

	l, err := New(size)
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}

	for i := range writes {
		l.Write(float64(i))
	}

	return l
}

func TestEmptyStorage(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); !errors.Is(err, ErrEmpty) {
			t.Fatalf("New(%d) error = %v, want ErrEmpty", size, err)
		}
	}

	if _, err := NewFromBuffer(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("NewFromBuffer(nil) error = %v, want ErrEmpty", err)
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name         string
		size, writes int
		delay        int
		want         float64
	}{
		{name: "latest", size: 8, writes: 8, delay: 1, want: 7},
		{name: "three back", size: 8, writes: 8, delay: 3, want: 5},
		{name: "after wrap", size: 4, writes: 10, delay: 1, want: 9},
		{name: "oldest", size: 4, writes: 10, delay: 4, want: 6},
		{name: "delay wraps", size: 4, writes: 10, delay: 6, want: 8},
		{name: "negative wraps", size: 4, writes: 10, delay: -1, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := filled(t, tt.size, tt.writes)
			if got := l.Read(tt.delay); got != tt.want {
				t.Fatalf("Read(%d) = %v, want %v", tt.delay, got, tt.want)
			}
		})
	}
}

func TestPulseLatency(t *testing.T) {
	// Reading at delay d sees a pulse d-1 writes after it went in.
	l, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	var seen []int
	for i := range 12 {
		x := 0.0
		if i == 2 {
			x = 1
		}

		l.Write(x)

		if l.Read(5) > 0.5 {
			seen = append(seen, i)
		}
	}

	if len(seen) != 1 || seen[0] != 6 {
		t.Fatalf("pulse seen at %v, want [6]", seen)
	}
}

func TestResetAndBorrowedStorage(t *testing.T) {
	storage := []float64{1, 2, 3, 4}

	l, err := NewFromBuffer(storage)
	if err != nil {
		t.Fatal(err)
	}

	for i, x := range storage {
		if x != 0 {
			t.Fatalf("storage[%d] = %v after NewFromBuffer, want 0", i, x)
		}
	}

	l.Write(5)
	if storage[0] != 5 {
		t.Fatal("writes should land in the borrowed storage")
	}

	l.Write(6)
	l.Reset()

	for d := range l.Len() {
		if got := l.Read(d); got != 0 {
			t.Fatalf("Read(%d) after Reset = %v, want 0", d, got)
		}
	}
}

func TestReadFractional(t *testing.T) {
	l := filled(t, 16, 16)

	if got := l.ReadFractional(3.5); math.Abs(got-12.5) > 1e-10 {
		t.Fatalf("ReadFractional(3.5) = %v, want 12.5", got)
	}

	if got, want := l.ReadFractional(5), l.Read(5); got != want {
		t.Fatalf("ReadFractional(5) = %v, want %v", got, want)
	}

	for _, d := range []float64{-1, 0, 100, math.NaN(), math.Inf(1)} {
		if got := l.ReadFractional(d); math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("ReadFractional(%v) = %v", d, got)
		}
	}
}
