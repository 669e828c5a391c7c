package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-evenpog/internal/analysis"
	"github.com/tphakala/go-evenpog/internal/testutil"
)

func TestNewHighpass_Gain(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
	}{
		{"44.1k", 44100},
		{"48k", 48000},
		{"96k", 96000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHighpass(tt.sampleRate, DefaultCutoffHz)
			require.NoError(t, err)
			expected := DefaultCutoffHz / (2 * math.Pi * tt.sampleRate)
			testutil.AssertRelativeError(t, expected, float64(h.Gain()), testutil.DefaultTolerance)
			assert.Equal(t, DefaultCutoffHz, h.CutoffHz())
		})
	}
}

func TestNewHighpass_InvalidArgs(t *testing.T) {
	_, err := NewHighpass(0, DefaultCutoffHz)
	require.Error(t, err)

	_, err = NewHighpass(44100, 0)
	require.Error(t, err)

	_, err = NewHighpass(44100, 30000)
	require.Error(t, err)
}

func TestHighpass_Recurrence(t *testing.T) {
	h, err := NewHighpass(44100, DefaultCutoffHz)
	require.NoError(t, err)
	g := h.Gain()

	var state float32
	for _, x := range []float32{1, 0.5, -0.25, 0, 0.75} {
		want := x - state
		state += g * want
		assert.InDelta(t, want, h.Process(x), 1e-7)
		assert.InDelta(t, state, h.State(), 1e-7)
	}
}

func TestHighpass_RemovesDC(t *testing.T) {
	const sampleRate = 44100
	h, err := NewHighpass(sampleRate, DefaultCutoffHz)
	require.NoError(t, err)

	// 4 s of 0.5 offset plus a 1 kHz tone.
	buf := make([]float32, 4*sampleRate)
	for i := range buf {
		buf[i] = 0.5 + 0.25*float32(math.Sin(2*math.Pi*1000*float64(i)/sampleRate))
	}
	h.ProcessBuffer(buf)

	tail := analysis.ToFloat64(buf[len(buf)-sampleRate/2:])
	stats := analysis.Measure(tail)
	testutil.AssertInRange(t, stats.DCOffset, -1e-3, 1e-3, "DC must be removed")
	testutil.AssertRelativeError(t, 0.25/math.Sqrt2, stats.RMS, testutil.LevelTolerance, "tone must pass")
}

// TestHighpass_IndependentInstances guards against shared state between
// filters (each processor owns its own).
func TestHighpass_IndependentInstances(t *testing.T) {
	a, err := NewHighpass(48000, DefaultCutoffHz)
	require.NoError(t, err)
	b, err := NewHighpass(48000, DefaultCutoffHz)
	require.NoError(t, err)

	for range 100 {
		a.Process(1)
	}
	assert.NotZero(t, a.State())
	assert.Zero(t, b.State())
	assert.Equal(t, float32(1), b.Process(1))
}

func TestHighpass_Reset(t *testing.T) {
	h, err := NewHighpass(48000, DefaultCutoffHz)
	require.NoError(t, err)
	h.Process(1)
	h.Reset()
	assert.Zero(t, h.State())
}
