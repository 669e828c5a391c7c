package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-evenpog/internal/shaper"
)

// ErrInvalidParams indicates a parameter outside its range.
var ErrInvalidParams = errors.New("invalid parameters")

// Params is the per-sample parameter snapshot read by the processor.
// The processor never writes to it.
type Params struct {
	Bypass bool

	MixDry  float32 // Dry signal level, [0, 1]
	MixSlur float32 // Slur head level, [0, 1]
	MixHFJ  float32 // HFJ head level, [0, 1]

	BufferLength int // Active delay length in samples, [16, 16384]
	Acceleration int // HFJ rate change per sample, [-1000, 1000]

	SlurMultiplier float32 // [0.1, 10]

	Breakpoints shaper.Breakpoints // Each in [-1, 1]

	Gain float32 // Output gain of the wet path, [0.1, 24]
}

// DefaultParams returns the factory settings.
func DefaultParams() Params {
	return Params{
		MixDry:         DefaultMixDry,
		MixSlur:        DefaultMixSlur,
		MixHFJ:         DefaultMixHFJ,
		BufferLength:   DefaultBufferLength,
		Acceleration:   DefaultAcceleration,
		SlurMultiplier: DefaultSlurMultiplier,
		Breakpoints:    shaper.DefaultBreakpoints(),
		Gain:           DefaultGain,
	}
}

// At returns p for every offset, so a *Params is a static ParamSource.
func (p *Params) At(int) *Params {
	return p
}

// Validate reports the first parameter outside its range.
func (p *Params) Validate() error {
	if err := checkFloat("mix_dry", p.MixDry, MinMix, MaxMix); err != nil {
		return err
	}
	if err := checkFloat("mix_slur", p.MixSlur, MinMix, MaxMix); err != nil {
		return err
	}
	if err := checkFloat("mix_hfj", p.MixHFJ, MinMix, MaxMix); err != nil {
		return err
	}
	if p.BufferLength < MinBufferLength || p.BufferLength > MaxBufferLength {
		return fmt.Errorf("%w: buffer_length must be in [%d, %d]: %d",
			ErrInvalidParams, MinBufferLength, MaxBufferLength, p.BufferLength)
	}
	if p.Acceleration < MinAcceleration || p.Acceleration > MaxAcceleration {
		return fmt.Errorf("%w: buffer_acceleration must be in [%d, %d]: %d",
			ErrInvalidParams, MinAcceleration, MaxAcceleration, p.Acceleration)
	}
	if err := checkFloat("slur_multiplier", p.SlurMultiplier, MinSlurMultiplier, MaxSlurMultiplier); err != nil {
		return err
	}
	for i, v := range p.Breakpoints {
		if err := checkFloat(fmt.Sprintf("breakpoint_%d", i), v, MinBreakpoint, MaxBreakpoint); err != nil {
			return err
		}
	}
	return checkFloat("gain", p.Gain, MinGain, MaxGain)
}

// Clamp forces every parameter into its range. NaN values fall back to
// the default.
func (p *Params) Clamp() {
	d := DefaultParams()

	p.MixDry = clampFloat(p.MixDry, MinMix, MaxMix, d.MixDry)
	p.MixSlur = clampFloat(p.MixSlur, MinMix, MaxMix, d.MixSlur)
	p.MixHFJ = clampFloat(p.MixHFJ, MinMix, MaxMix, d.MixHFJ)
	p.BufferLength = min(max(p.BufferLength, MinBufferLength), MaxBufferLength)
	p.Acceleration = min(max(p.Acceleration, MinAcceleration), MaxAcceleration)
	p.SlurMultiplier = clampFloat(p.SlurMultiplier, MinSlurMultiplier, MaxSlurMultiplier, d.SlurMultiplier)
	for i := range p.Breakpoints {
		p.Breakpoints[i] = clampFloat(p.Breakpoints[i], MinBreakpoint, MaxBreakpoint, d.Breakpoints[i])
	}
	p.Gain = clampFloat(p.Gain, MinGain, MaxGain, d.Gain)
}

func checkFloat(name string, v float32, lo, hi float64) error {
	f := float64(v)
	if math.IsNaN(f) || f < lo || f > hi {
		return fmt.Errorf("%w: %s must be in [%g, %g]: %g", ErrInvalidParams, name, lo, hi, f)
	}
	return nil
}

func clampFloat(v float32, lo, hi float64, fallback float32) float32 {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return fallback
	case f < lo:
		return float32(lo)
	case f > hi:
		return float32(hi)
	}
	return v
}
