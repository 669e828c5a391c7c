package delay

// Delay line sizing
const (
	// DefaultCapacity is the physical storage size in samples.
	DefaultCapacity = 16384

	// MinLength is the shortest active length the line accepts.
	MinLength = 16
)
