package filter

import "math"

const (
	// DefaultCutoffHz is the corner frequency of the DC blocker.
	DefaultCutoffHz = 20.0

	twoPi = 2 * math.Pi
)
