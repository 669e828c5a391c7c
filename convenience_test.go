package evenpog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-evenpog/internal/testutil"
)

func TestProcessMonoDoesNotModifyInput(t *testing.T) {
	input := testutil.Sine(500, 440, RateCD, 0.5)
	orig := append([]float32(nil), input...)

	p := DefaultParams()
	out, err := ProcessMono(input, RateCD, &p)
	require.NoError(t, err)

	require.Len(t, out, len(input))
	testutil.AssertBitExact(t, orig, input)
	assert.NotEqual(t, input, out)
}

func TestProcessMonoInvalidRate(t *testing.T) {
	p := DefaultParams()
	_, err := ProcessMono(make([]float32, 10), 0, &p)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, _, err = ProcessStereo(nil, nil, -1, &p)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestProcessStereo(t *testing.T) {
	left := testutil.Sine(2000, 440, RateDAT, 0.8)
	right := testutil.Noise(2000, 11, 0.8)
	p := DefaultParams()

	leftOut, rightOut, err := ProcessStereo(left, right, RateDAT, &p)
	require.NoError(t, err)

	// Each channel matches an independent mono render.
	wantLeft, err := ProcessMono(left, RateDAT, &p)
	require.NoError(t, err)
	wantRight, err := ProcessMono(right, RateDAT, &p)
	require.NoError(t, err)

	testutil.AssertBitExact(t, wantLeft, leftOut)
	testutil.AssertBitExact(t, wantRight, rightOut)

	_, _, err = ProcessStereo(left, right[:10], RateDAT, &p)
	assert.ErrorIs(t, err, ErrChannelMismatch)
}

func TestInterleaveToStereo(t *testing.T) {
	left := []float32{1, 2, 3}
	right := []float32{4, 5, 6, 7}

	got := InterleaveToStereo(left, right)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, got)

	l, r := DeinterleaveFromStereo(got)
	assert.Equal(t, left, l)
	assert.Equal(t, right[:3], r)

	got64 := InterleaveToStereo([]float64{0.5}, []float64{-0.5})
	assert.Equal(t, []float64{0.5, -0.5}, got64)
}

func TestInterleaveMultiChannel(t *testing.T) {
	planar := [][]float32{{1, 2}, {3, 4}, {5, 6}}

	inter := Interleave(planar)
	assert.Equal(t, []float32{1, 3, 5, 2, 4, 6}, inter)
	assert.Equal(t, planar, Deinterleave(inter, 3))

	// Incomplete trailing frame is dropped.
	assert.Equal(t, [][]float32{{1}, {3}, {5}}, Deinterleave([]float32{1, 3, 5, 2}, 3))
	assert.Nil(t, Deinterleave([]float32{1, 2}, 0))
	assert.Nil(t, Interleave[float32](nil))
}

func TestApplyGain(t *testing.T) {
	x := []float32{1, -2, 0.5}
	ApplyGain(x, 2)
	assert.Equal(t, []float32{2, -4, 1}, x)
}
