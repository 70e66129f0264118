// Package envelope provides the control-rate envelopes of the voice.
//
// Both envelopes advance once per block. Decay is the internal modulation
// source used when a parameter is not externally patched; LPG models the
// vactrol response that drives the low-pass gate.
package envelope
