package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	x := []float64{0.5, -1.5, 0.5, 0.5}
	s := Measure(x)

	assert.InDelta(t, 1.5, s.Peak, 1e-12)
	assert.Equal(t, 1, s.PeakIndex)
	assert.InDelta(t, 0.0, s.DCOffset, 1e-12)
	assert.InDelta(t, 3.0, s.Energy, 1e-12)
	assert.InDelta(t, math.Sqrt(0.75), s.RMS, 1e-12)
	assert.InDelta(t, 1.0, s.StdDev, 1e-12)
}

func TestMeasure_DCOnly(t *testing.T) {
	s := Measure([]float64{0.25, 0.25, 0.25})
	assert.InDelta(t, 0.25, s.DCOffset, 1e-12)
	assert.InDelta(t, 0.0, s.StdDev, 1e-12)

	single := Measure([]float64{-2})
	assert.Zero(t, single.StdDev)
	assert.Equal(t, 0, single.PeakIndex)
}

func TestMeasure_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Measure(nil))
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, []float64{0.5, -0.25}, ToFloat64([]float32{0.5, -0.25}))
}

func TestSpectrum_Sine(t *testing.T) {
	const (
		sampleRate = 48000.0
		n          = 4800
		freq       = 1000.0
	)
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}

	s, err := NewSpectrum(x, sampleRate)
	require.NoError(t, err)
	require.Len(t, s.Magnitudes, n/2+1)

	dom := s.Dominant()
	assert.Equal(t, s.Bin(freq), dom)
	assert.InDelta(t, freq, s.Frequency(dom), sampleRate/n)

	// Nearly all energy sits in the tone bin.
	total := s.BandEnergy(0, len(s.Magnitudes)-1)
	tone := s.BandEnergy(dom-1, dom+1)
	assert.Greater(t, tone/total, 0.99)
}

func TestSpectrum_TooShort(t *testing.T) {
	_, err := NewSpectrum([]float64{1}, 44100)
	require.ErrorIs(t, err, ErrTooShort)
}

func TestBandEnergy_EmptyRange(t *testing.T) {
	s, err := NewSpectrum(make([]float64, 16), 44100)
	require.NoError(t, err)
	assert.Zero(t, s.BandEnergy(5, 2))
}
