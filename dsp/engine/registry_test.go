package engine

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-macrosynth/dsp/buffer"
)

type stubEngine struct{ id int }

func (*stubEngine) Init(*buffer.Arena, float64) error { return nil }
func (*stubEngine) Reset() {}
func (*stubEngine) LoadUserData([]byte) {}
func (*stubEngine) Render(*Parameters, []float64, []float64) bool { return false }

func TestRegistryRegisterAndLookup(t *testing.T) {
	var r Registry
	a, b := &stubEngine{id: 1}, &stubEngine{id: 2}

	if err := r.Register(a, false, 0.8, 0.6); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(b, true, -1, 0.5); err != nil {
		t.Fatal(err)
	}

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if r.Get(1) != b {
		t.Fatal("Get(1) returned the wrong engine")
	}
	want := PostProcessingSettings{OutGain: -1, AuxGain: 0.5, AlreadyEnveloped: true}
	if got := r.Settings(1); got != want {
		t.Fatalf("Settings(1) = %+v, want %+v", got, want)
	}
	if r.Get(2) != nil || r.Get(-1) != nil {
		t.Fatal("out of range Get must return nil")
	}
	if got := r.Settings(5); got != (PostProcessingSettings{}) {
		t.Fatalf("Settings(5) = %+v, want zero", got)
	}
}

func TestRegistryCapacity(t *testing.T) {
	var r Registry
	for i := 0; i < MaxEngines; i++ {
		if err := r.Register(&stubEngine{id: i}, false, 1, 1); err != nil {
			t.Fatalf("Register(%d) error = %v", i, err)
		}
	}
	err := r.Register(&stubEngine{}, false, 1, 1)
	if !errors.Is(err, ErrRegistryFull) {
		t.Fatalf("Register() error = %v, want ErrRegistryFull", err)
	}
	if r.Len() != MaxEngines {
		t.Fatalf("Len() = %d, want %d", r.Len(), MaxEngines)
	}
}

func TestRegistryRejectsNil(t *testing.T) {
	var r Registry
	if err := r.Register(nil, false, 1, 1); !errors.Is(err, ErrNilEngine) {
		t.Fatalf("Register(nil) error = %v, want ErrNilEngine", err)
	}
}

func TestRegistryEachStopsOnError(t *testing.T) {
	var r Registry
	for i := 0; i < 3; i++ {
		r.MustRegister(&stubEngine{id: i}, false, 1, 1)
	}

	stop := errors.New("stop")
	var visited []int
	err := r.Each(func(i int, e Engine) error {
		visited = append(visited, e.(*stubEngine).id)
		if i == 1 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Each() error = %v, want stop", err)
	}
	if len(visited) != 2 || visited[0] != 0 || visited[1] != 1 {
		t.Fatalf("visited = %v, want [0 1]", visited)
	}
}

func TestMustRegisterPanicsWhenFull(t *testing.T) {
	var r Registry
	for i := 0; i < MaxEngines; i++ {
		r.MustRegister(&stubEngine{}, false, 1, 1)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	r.MustRegister(&stubEngine{}, false, 1, 1)
}
