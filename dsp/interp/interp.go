package interp

// Hermite4 evaluates the Catmull-Rom cubic through xm1..x2 at t in [0, 1]
// between x0 and x1. The string engine reads its waveguide through it.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Linear2 blends x0 into x1. Wavetable lookups and morphs use it.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}
