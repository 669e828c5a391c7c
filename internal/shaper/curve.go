// Package shaper holds the stateless nonlinear stages of the signal chain:
// the pre-emphasis polynomial and the breakpoint waveshaper.
package shaper

// Breakpoints are the ten curve values anchored at the input levels
// -1, -0.8, -0.6, -0.4, -0.2, 0.2, 0.4, 0.6, 0.8 and 1.
type Breakpoints [NumBreakpoints]float32

// DefaultBreakpoints returns the breakpoints of the identity curve.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints(breakpointEdges)
}

// Edge returns the input level breakpoint i is anchored at.
func Edge(i int) float32 {
	return breakpointEdges[i]
}

// Curve is a piecewise-linear transfer curve over [-1, 1].
//
// Band i spans (knot[i], knot[i+1]]; band 0 also owns -1. Inputs outside
// [-1, 1] are clamped first, so the output never leaves the range spanned by
// the curve values.
type Curve struct {
	values [numKnots]float32
}

// NewCurve builds a curve from bp. The inner anchors at ±0.1 are fixed to the
// identity, which keeps low-level signals undistorted.
func NewCurve(bp *Breakpoints) Curve {
	var c Curve
	c.Set(bp)
	return c
}

// Set replaces the curve values with bp.
func (c *Curve) Set(bp *Breakpoints) {
	half := NumBreakpoints / 2
	copy(c.values[:half], bp[:half])
	c.values[half] = -innerEdge
	c.values[half+1] = innerEdge
	copy(c.values[half+2:], bp[half:])
}

// Apply maps x through the curve.
func (c *Curve) Apply(x float32) float32 {
	switch {
	case x <= knots[0]:
		return c.values[0]
	case x >= knots[numKnots-1]:
		return c.values[numKnots-1]
	case x > -innerEdge && x <= innerEdge:
		return x
	}

	i := Band(x)
	lo, hi := knots[i], knots[i+1]
	w := (hi - x) / (hi - lo)
	return w*c.values[i] + (1-w)*c.values[i+1]
}

// Band returns the index of the band containing x after clamping to [-1, 1].
// Boundary values belong to the lower-indexed band.
func Band(x float32) int {
	lo, hi := 0, numKnots-2
	for lo < hi {
		mid := (lo + hi) / 2
		if x <= knots[mid+1] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// Shape maps x through the curve described by bp without keeping a Curve.
func Shape(x float32, bp *Breakpoints) float32 {
	c := NewCurve(bp)
	return c.Apply(x)
}
