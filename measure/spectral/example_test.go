package spectral_test

import (
	"fmt"

	"github.com/cwbudde/algo-macrosynth/internal/testutil"
	"github.com/cwbudde/algo-macrosynth/measure/spectral"
)

func ExampleAnalyze() {
	signal := testutil.DeterministicSine(750, 48000, 0.5, 4096)
	r, err := spectral.Analyze(signal, 48000)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("peak %.0f Hz, %.1f dBFS\n", r.PeakFrequency, r.Peak_dB)
	// Output: peak 750 Hz, -6.0 dBFS
}
