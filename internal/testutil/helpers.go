// Package testutil provides reusable test helpers for the effect's packages.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-evenpog/internal/simdops"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-6
	LevelTolerance   = 1e-2
)

// Impulse returns n samples with a unit impulse at index 0.
func Impulse(n int) []float32 {
	s := make([]float32, n)
	if n > 0 {
		s[0] = 1
	}
	return s
}

// Sine returns n samples of a sine at freq Hz with the given amplitude.
func Sine(n int, freq, sampleRate, amplitude float64) []float32 {
	s := make([]float32, n)
	omega := 2 * math.Pi * freq / sampleRate
	for i := range s {
		s[i] = float32(amplitude * math.Sin(omega*float64(i)))
	}
	return s
}

// Noise returns n samples of deterministic pseudo-random noise in
// [-amplitude, amplitude], generated by a 32-bit LCG.
func Noise(n int, seed uint32, amplitude float32) []float32 {
	s := make([]float32, n)
	state := seed
	for i := range s {
		state = state*1664525 + 1013904223
		s[i] = amplitude * (float32(state)/float32(math.MaxUint32)*2 - 1)
	}
	return s
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F simdops.Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange[F simdops.Float](t *testing.T, s []F, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if f := float64(v); f < minVal || f > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, f, minVal, maxVal)
		}
	}
	return true
}

// AssertBitExact verifies that two slices are identical sample for sample.
func AssertBitExact[F simdops.Float](t *testing.T, expected, actual []F, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if math.Float64bits(float64(expected[i])) != math.Float64bits(float64(actual[i])) {
			return assert.Fail(t, "sample mismatch",
				"sample %d: expected %v, got %v", i, expected[i], actual[i])
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
