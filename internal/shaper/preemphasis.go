package shaper

// PreEmphasis applies the fixed cubic soft-clip y = x - x²/8 - x³/16 + 1/8.
// It is stateless and safe to call from any number of processors.
func PreEmphasis(x float32) float32 {
	x2 := x * x
	x3 := x2 * x
	return x - x2/preEmphasisSquareDiv - x3/preEmphasisCubeDiv + preEmphasisOffset
}
