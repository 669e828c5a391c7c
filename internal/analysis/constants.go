package analysis

// Spectrum constants
const (
	// hermitianDivisor gives the unique bins of a real FFT: n/2 + 1.
	hermitianDivisor = 2

	// minSpectrumLength is the shortest signal Spectrum accepts.
	minSpectrumLength = 2
)
