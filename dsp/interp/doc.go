// Package interp provides the interpolation primitives used by the voice:
// cubic Hermite reads for fractional delays and a linear ramp that spreads
// a per-block control value over the samples of that block.
package interp
