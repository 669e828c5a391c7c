// Package filter provides the stateful filters of the signal chain.
package filter

import (
	"fmt"
)

// Highpass is a one-pole DC blocker:
//
//	out   = in - state
//	state = state + g*out,   g = cutoff / (2π * sampleRate)
//
// Each Highpass owns its state. Processors for different channels or effect
// instances must never share one.
type Highpass struct {
	state    float32
	gain     float32
	cutoffHz float64
}

// NewHighpass creates a DC blocker for the given sample rate and cutoff.
func NewHighpass(sampleRate, cutoffHz float64) (*Highpass, error) {
	h := &Highpass{}
	if err := h.SetCutoff(sampleRate, cutoffHz); err != nil {
		return nil, err
	}
	return h, nil
}

// SetCutoff recomputes the feedback gain. The filter state is kept.
func (h *Highpass) SetCutoff(sampleRate, cutoffHz float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive: %v", sampleRate)
	}
	if cutoffHz <= 0 || cutoffHz >= sampleRate/2 {
		return fmt.Errorf("cutoff must be in (0, %v): %v", sampleRate/2, cutoffHz)
	}

	h.gain = float32(cutoffHz / (twoPi * sampleRate))
	h.cutoffHz = cutoffHz
	return nil
}

// Gain returns the feedback coefficient g.
func (h *Highpass) Gain() float32 {
	return h.gain
}

// CutoffHz returns the configured corner frequency.
func (h *Highpass) CutoffHz() float64 {
	return h.cutoffHz
}

// State returns the current integrator value.
func (h *Highpass) State() float32 {
	return h.state
}

// Process filters one sample.
func (h *Highpass) Process(x float32) float32 {
	out := x - h.state
	h.state += h.gain * out
	return out
}

// ProcessBuffer filters buf in place.
func (h *Highpass) ProcessBuffer(buf []float32) {
	for i, x := range buf {
		buf[i] = h.Process(x)
	}
}

// Reset clears the filter state.
func (h *Highpass) Reset() {
	h.state = 0
}
