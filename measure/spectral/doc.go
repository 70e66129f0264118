// Package spectral summarizes rendered voice output for listening tests and
// regression checks.
//
// Analyze takes a block of samples, applies a Hann window, transforms it and
// reports level and spectral-shape figures: peak and RMS level, DC offset,
// the dominant frequency, the spectral centroid, flatness and rolloff.
// Int16 output from a voice can be converted with FromPCM first.
package spectral
