// Package modulation implements the two-stage audio-rate modulation insert
// that sits between an engine's raw output and post-processing.
//
// Each stage combines the wet signal (carrier) with an external modulator
// buffer using one of the Mode algorithms. The modulator is pre-amplified by
// Gain, soft clipped and scaled by Level. Timbre is algorithm specific:
//   - Crossfade: balance between carrier and modulator.
//   - Fold: folding gain of the summed signals.
//   - AnalogRingMod: diode threshold (crossover distortion).
//   - DigitalRingMod: drive into the output saturator.
//   - XOR: blend between carrier and the bitwise result.
//   - Compressor: ducking depth driven by the modulator envelope.
//   - FrequencyModulation: phase modulation depth through a short delay.
//   - Vocoder: envelope release time.
//
// A stage whose Input is nil, or whose mode is ModeOff, leaves the buffers
// untouched.
package modulation
