package engine

// Block processing
const (
	// MaxBlockSize is the largest block processed under one bypass decision.
	MaxBlockSize = 64
)

// Read head scheduling
const (
	// RateWrap bounds the HFJ rate to [0, RateWrap), about 0.5 s at 44.1 kHz.
	RateWrap = 22050

	// InitialRate is the HFJ rate of a fresh processor.
	InitialRate = 0

	// slurStallThreshold and slurResetValue keep the slur recurrence from
	// collapsing onto index 0.
	slurStallThreshold = 0.1
	slurResetValue     = 1.0
)

// Parameter ranges
const (
	MinMix = 0.0
	MaxMix = 1.0

	MinBufferLength = 16
	MaxBufferLength = 16384

	MinAcceleration = -1000
	MaxAcceleration = 1000

	MinSlurMultiplier = 0.1
	MaxSlurMultiplier = 10.0

	MinBreakpoint = -1.0
	MaxBreakpoint = 1.0

	MinGain = 0.1
	MaxGain = 24.0
)

// Parameter defaults
const (
	DefaultMixDry         = 0.5
	DefaultMixSlur        = 0.5
	DefaultMixHFJ         = 0.5
	DefaultBufferLength   = 512
	DefaultAcceleration   = 10
	DefaultSlurMultiplier = 1.2
	DefaultGain           = 1.0
)
