package evenpog

import (
	"github.com/tphakala/go-evenpog/internal/delay"
	"github.com/tphakala/go-evenpog/internal/engine"
)

// Channel constants
const (
	monoChannels   = 1
	stereoChannels = 2   // Stereo channel count (used by interleave functions)
	maxChannels    = 256 // Maximum supported channel count
)

// Sample rate limits
const (
	minSampleRate = 8000.0
	maxSampleRate = 768000.0
)

// Delay and block sizing
const (
	// DefaultCapacity is the delay line capacity used when Config.Capacity is 0.
	DefaultCapacity = delay.DefaultCapacity

	// MaxBlockSize is the number of samples processed under one bypass decision.
	MaxBlockSize = engine.MaxBlockSize

	bytesPerFloat32 = 4
)

// Common sample rates.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)
