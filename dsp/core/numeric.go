package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clip16 saturates x to the signed 16-bit range.
func Clip16(x int32) int16 {
	if x < math.MinInt16 {
		return math.MinInt16
	}

	if x > math.MaxInt16 {
		return math.MaxInt16
	}

	return int16(x)
}

// Quantize16 converts a pre-scaled sample to a 16-bit output value.
//
// The +1 offset matches the DAC convention of the hardware this voice was
// designed for and keeps output bit-exact with it.
func Quantize16(x float64) int16 {
	r := math.Round(x)
	if math.IsNaN(r) {
		return 1
	}

	if r > math.MaxInt32-1 {
		return math.MaxInt16
	}

	if r < math.MinInt32 {
		return math.MinInt16
	}

	return Clip16(1 + int32(r))
}

// SoftLimit is a rational tanh-like saturator, accurate for |x| <= 3.
func SoftLimit(x float64) float64 {
	return x * (27 + x*x) / (27 + 9*x*x)
}

// SoftClip saturates x smoothly to [-1, 1].
func SoftClip(x float64) float64 {
	if x < -3 {
		return -1
	}

	if x > 3 {
		return 1
	}

	return SoftLimit(x)
}

// NearlyEqual compares a and b with an absolute tolerance near zero and a
// relative one elsewhere. A non-positive eps selects 1e-12.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	d := math.Abs(a - b)
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))

	return d <= eps*scale
}

// FlushDenormals zeroes values below 1e-30 in magnitude. Filter and
// envelope state decaying towards silence passes through it each sample.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < 1e-30 {
		return 0
	}

	return x
}

// LinearToDB returns 20*log10(v): -Inf at zero, NaN below it.
func LinearToDB(v float64) float64 {
	switch {
	case v < 0:
		return math.NaN()
	case v == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}
