package evenpog

import (
	"github.com/tphakala/go-evenpog/internal/simdops"
)

// NewMono creates a mono effect with the default delay capacity.
func NewMono(sampleRate float64) (*Effect, error) {
	return New(&Config{SampleRate: sampleRate, Channels: monoChannels})
}

// NewStereo creates a stereo effect with the default delay capacity.
func NewStereo(sampleRate float64) (*Effect, error) {
	return New(&Config{SampleRate: sampleRate, Channels: stereoChannels})
}

// ProcessMono is a convenience function for one-shot mono processing.
// It creates a fresh effect, renders a copy of input and returns it.
func ProcessMono(input []float32, sampleRate float64, src ParamSource) ([]float32, error) {
	e, err := NewMono(sampleRate)
	if err != nil {
		return nil, err
	}

	output := make([]float32, len(input))
	copy(output, input)
	if err := e.Process([][]float32{output}, src); err != nil {
		return nil, err
	}
	return output, nil
}

// ProcessStereo is a convenience function for one-shot stereo processing.
// Each channel runs through its own delay line and filter.
func ProcessStereo(left, right []float32, sampleRate float64, src ParamSource) (leftOut, rightOut []float32, err error) {
	e, err := NewStereo(sampleRate)
	if err != nil {
		return nil, nil, err
	}

	leftOut = make([]float32, len(left))
	rightOut = make([]float32, len(right))
	copy(leftOut, left)
	copy(rightOut, right)

	if err := e.Process([][]float32{leftOut, rightOut}, src); err != nil {
		return nil, nil, err
	}
	return leftOut, rightOut, nil
}

// ProcessMonoFloat64 is the float64 equivalent of ProcessMono.
// Samples are processed at float32 precision.
func ProcessMonoFloat64(input []float64, sampleRate float64, src ParamSource) ([]float64, error) {
	e, err := NewMono(sampleRate)
	if err != nil {
		return nil, err
	}

	output := make([]float64, len(input))
	copy(output, input)
	if err := e.ProcessFloat64([][]float64{output}, src); err != nil {
		return nil, err
	}
	return output, nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo[F simdops.Float](left, right []F) []F {
	minLen := min(len(left), len(right))
	result := make([]F, minLen*stereoChannels)
	simdops.For[F]().Interleave2(result, left[:minLen], right[:minLen])
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo[F simdops.Float](interleaved []F) (left, right []F) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]F, numSamples)
	right = make([]F, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}

// Deinterleave splits an interleaved buffer into channels planar buffers.
// Trailing samples that do not fill a frame are dropped.
func Deinterleave[F simdops.Float](interleaved []F, channels int) [][]F {
	if channels < 1 {
		return nil
	}
	frames := len(interleaved) / channels
	out := make([][]F, channels)
	for ch := range out {
		out[ch] = make([]F, frames)
		for i := range frames {
			out[ch][i] = interleaved[i*channels+ch]
		}
	}
	return out
}

// Interleave joins planar buffers of equal length into one interleaved buffer.
func Interleave[F simdops.Float](planar [][]F) []F {
	if len(planar) == 0 {
		return nil
	}
	if len(planar) == stereoChannels && len(planar[0]) == len(planar[1]) {
		return InterleaveToStereo(planar[0], planar[1])
	}
	frames := len(planar[0])
	out := make([]F, frames*len(planar))
	for ch, samples := range planar {
		for i := range frames {
			out[i*len(planar)+ch] = samples[i]
		}
	}
	return out
}

// ApplyGain scales samples in place by gain.
func ApplyGain[F simdops.Float](samples []F, gain F) {
	simdops.For[F]().Scale(samples, samples, gain)
}
