// Package core holds the numeric helpers shared by every stage of the voice:
// clamping, 16-bit quantization, soft saturation and pitch conversion, plus
// the block processing configuration.
package core
