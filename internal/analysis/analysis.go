// Package analysis measures rendered signals: level statistics and
// magnitude spectra of impulse responses.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-evenpog/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrTooShort is returned when a signal is too short to analyse.
var ErrTooShort = errors.New("signal too short")

// Stats summarises a signal.
type Stats struct {
	Peak      float64 // Largest absolute sample value
	PeakIndex int     // Index of Peak
	RMS       float64
	DCOffset  float64 // Arithmetic mean
	StdDev    float64 // Sample standard deviation, level without DC
	Energy    float64 // Sum of squares
}

// Measure computes Stats for x. An empty x yields zero Stats.
func Measure(x []float64) Stats {
	if len(x) == 0 {
		return Stats{}
	}

	ops := simdops.Float64Ops()
	energy := ops.DotProductUnsafe(x, x)

	s := Stats{
		RMS:      math.Sqrt(energy / float64(len(x))),
		DCOffset: ops.Sum(x) / float64(len(x)),
		Energy:   energy,
	}
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}
	for i, v := range x {
		if a := math.Abs(v); a > s.Peak {
			s.Peak = a
			s.PeakIndex = i
		}
	}
	return s
}

// ToFloat64 widens a float32 signal.
func ToFloat64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}

// Spectrum holds the magnitude of a real FFT.
type Spectrum struct {
	Magnitudes []float64
	SampleRate float64

	fft *fourier.FFT
}

// NewSpectrum transforms x and returns its magnitude spectrum
// (len(x)/2 + 1 bins).
func NewSpectrum(x []float64, sampleRate float64) (*Spectrum, error) {
	if len(x) < minSpectrumLength {
		return nil, ErrTooShort
	}

	fft := fourier.NewFFT(len(x))
	coeffs := fft.Coefficients(nil, x)

	mags := make([]float64, len(x)/hermitianDivisor+1)
	for i := range mags {
		mags[i] = cmplx.Abs(coeffs[i])
	}

	return &Spectrum{
		Magnitudes: mags,
		SampleRate: sampleRate,
		fft:        fft,
	}, nil
}

// Frequency returns the centre frequency of bin in Hz.
func (s *Spectrum) Frequency(bin int) float64 {
	return s.fft.Freq(bin) * s.SampleRate
}

// Bin returns the bin nearest to freq.
func (s *Spectrum) Bin(freq float64) int {
	n := s.fft.Len()
	bin := int(math.Round(freq / s.SampleRate * float64(n)))
	return max(0, min(bin, len(s.Magnitudes)-1))
}

// Dominant returns the bin with the largest magnitude, ignoring DC.
func (s *Spectrum) Dominant() int {
	if len(s.Magnitudes) < minSpectrumLength {
		return 0
	}
	return floats.MaxIdx(s.Magnitudes[1:]) + 1
}

// BandEnergy returns the summed squared magnitude of bins [lo, hi].
func (s *Spectrum) BandEnergy(lo, hi int) float64 {
	lo = max(lo, 0)
	hi = min(hi, len(s.Magnitudes)-1)
	if lo > hi {
		return 0
	}
	band := s.Magnitudes[lo : hi+1]
	return simdops.Float64Ops().DotProductUnsafe(band, band)
}
