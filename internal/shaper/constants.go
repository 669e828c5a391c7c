package shaper

// NumBreakpoints is the number of user-adjustable breakpoints.
const NumBreakpoints = 10

// Pre-emphasis polynomial coefficients: y = x - x²/8 - x³/16 + 1/8
const (
	preEmphasisSquareDiv = 8.0
	preEmphasisCubeDiv   = 16.0
	preEmphasisOffset    = 0.125
)

// Inner anchor that splits the curve into its negative and positive halves.
// Between -innerEdge and +innerEdge the curve is the identity.
const innerEdge = 0.1

// numKnots is NumBreakpoints plus the two inner anchors.
const numKnots = NumBreakpoints + 2

// knots holds the ascending band edges of the transfer curve.
var knots = [numKnots]float32{
	-1.0, -0.8, -0.6, -0.4, -0.2, -innerEdge,
	innerEdge, 0.2, 0.4, 0.6, 0.8, 1.0,
}

// breakpointEdges maps breakpoint i to the input level it is anchored at.
var breakpointEdges = [NumBreakpoints]float32{
	-1.0, -0.8, -0.6, -0.4, -0.2,
	0.2, 0.4, 0.6, 0.8, 1.0,
}
