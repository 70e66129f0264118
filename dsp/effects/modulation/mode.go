package modulation

import (
	"fmt"
	"strings"
)

// Mode selects the algorithm an insert stage applies.
type Mode int

const (
	ModeOff Mode = iota
	ModeCrossfade
	ModeFold
	ModeAnalogRingMod
	ModeDigitalRingMod
	ModeXOR
	ModeCompressor
	ModeFrequencyModulation
	ModeVocoder
)

// NumModes is the number of defined modes.
const NumModes = int(ModeVocoder) + 1

var modeNames = [NumModes]string{
	"off", "crossfade", "fold", "analog-ringmod", "digital-ringmod",
	"xor", "compressor", "fm", "vocoder",
}

// String returns the short mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= NumModes {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode looks up a mode by the name String returns.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeOff, fmt.Errorf("modulation: unknown mode %q", name)
}

// clampMode maps out-of-range values onto the nearest legal mode. Without
// the vocoder, the highest mode is frequency modulation.
func clampMode(m Mode, allowVocoder bool) Mode {
	highest := ModeVocoder
	if !allowVocoder {
		highest = ModeFrequencyModulation
	}
	switch {
	case m < ModeOff:
		return ModeOff
	case m > highest:
		return highest
	}
	return m
}
