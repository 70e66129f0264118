// Package effects provides the audio effect kernels used by the voice
// post-processing and modulation stages.
//
// Subpackages:
//   - github.com/cwbudde/algo-macrosynth/dsp/effects/modulation
//
// Effects in this package:
//   - Limiter: peak follower with soft saturation, for engines whose native
//     output exceeds full scale.
//   - Vocoder: band vocoder used as the last mode of the modulation insert.
//
// Processing never allocates.
package effects
