package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-evenpog/internal/delay"
	"github.com/tphakala/go-evenpog/internal/filter"
	"github.com/tphakala/go-evenpog/internal/testutil"
)

const testSampleRate = 44100.0

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	p, err := NewProcessor(testSampleRate, delay.DefaultCapacity)
	require.NoError(t, err)
	return p
}

func TestNewProcessor_InvalidArgs(t *testing.T) {
	_, err := NewProcessor(0, delay.DefaultCapacity)
	require.Error(t, err)

	_, err = NewProcessor(testSampleRate, 4)
	require.Error(t, err)
}

// TestStep_FirstSamples follows the chain by hand for the first two samples
// of an impulse with default parameters.
func TestStep_FirstSamples(t *testing.T) {
	p := newTestProcessor(t)
	prm := DefaultParams()

	// Both heads read index 0, which holds the impulse:
	// s = 0.5 + 0.5 = 1, pre = 1 - 1/8 - 1/16 + 1/8 = 0.9375,
	// highpass passes it unchanged, identity shaper,
	// y = 0.5*1 + 1*0.9375.
	y0 := p.Step(1, &prm)
	assert.InDelta(t, 1.4375, y0, testutil.DefaultTolerance)
	assert.Equal(t, Heads{Slur: 1, HFJ: 0, Rate: DefaultAcceleration}, p.Heads())

	// Slur reads index 1 (0), HFJ still reads index 0 (1): s = 0.5.
	g := float32(filter.DefaultCutoffHz / (2 * 3.141592653589793 * testSampleRate))
	pre := float32(0.5 - 0.25/8 - 0.125/16 + 0.125)
	want := pre - g*0.9375
	y1 := p.Step(0, &prm)
	assert.InDelta(t, want, y1, testutil.DefaultTolerance)
	assert.Equal(t, Heads{Slur: 1, HFJ: 512 - DefaultAcceleration, Rate: 2 * DefaultAcceleration}, p.Heads())
}

func TestProcess_BypassIsIdentity(t *testing.T) {
	p := newTestProcessor(t)
	prm := DefaultParams()
	prm.Bypass = true

	input := testutil.Noise(1000, 7, 0.8)
	buf := append([]float32(nil), input...)
	p.Process(buf, &prm)

	testutil.AssertBitExact(t, input, buf)
	assert.Equal(t, StateBypassed, p.State())
	assert.Equal(t, NewHeads(), p.Heads(), "bypass must not move the heads")
	assert.Zero(t, p.SamplesProcessed())
}

func TestProcess_BypassFreezesState(t *testing.T) {
	p := newTestProcessor(t)
	ref := newTestProcessor(t)
	prm := DefaultParams()
	prm.Acceleration = 123
	prm.SlurMultiplier = 2.5

	first := testutil.Noise(256, 1, 0.5)
	second := testutil.Noise(256, 2, 0.5)

	a := append([]float32(nil), first...)
	p.Process(a, &prm)
	b := append([]float32(nil), first...)
	ref.Process(b, &prm)

	// A bypassed stretch in between must leave no trace.
	bypassed := prm
	bypassed.Bypass = true
	p.Process(testutil.Noise(640, 3, 0.9), &bypassed)

	a = append(a[:0], second...)
	p.Process(a, &prm)
	b = append(b[:0], second...)
	ref.Process(b, &prm)

	testutil.AssertBitExact(t, b, a)
}

// TestProcessBlock_BypassEvaluatedPerBlock checks that the flag is read once
// at the start of each block.
func TestProcessBlock_BypassEvaluatedPerBlock(t *testing.T) {
	p := newTestProcessor(t)

	auto := make(Automation, 2*MaxBlockSize)
	for i := range auto {
		auto[i] = DefaultParams()
	}
	// Block 0 starts active and requests bypass mid-block.
	auto[10].Bypass = true
	// Block 1 starts bypassed and releases it mid-block.
	auto[MaxBlockSize].Bypass = true

	buf := testutil.Noise(2*MaxBlockSize, 9, 0.5)
	input := append([]float32(nil), buf...)

	assert.Equal(t, StateActive, p.ProcessBlock(buf[:MaxBlockSize], auto, 0))
	assert.Equal(t, int64(MaxBlockSize), p.SamplesProcessed())

	assert.Equal(t, StateBypassed, p.ProcessBlock(buf[MaxBlockSize:], auto, MaxBlockSize))
	testutil.AssertBitExact(t, input[MaxBlockSize:], buf[MaxBlockSize:])
	assert.Equal(t, int64(MaxBlockSize), p.SamplesProcessed())
}

func TestProcess_ImpulseDeterministicAndBounded(t *testing.T) {
	prm := DefaultParams()
	prm.BufferLength = 512

	render := func() []float32 {
		p := newTestProcessor(t)
		buf := testutil.Impulse(8192)
		p.Process(buf, &prm)
		return buf
	}

	first := render()
	second := render()

	testutil.AssertBitExact(t, first, second)
	testutil.AssertNoNaNOrInf(t, first)
	testutil.AssertAllInRange(t, first, -MaxGain, MaxGain)
}

func TestProcess_BoundedAtExtremes(t *testing.T) {
	prm := DefaultParams()
	prm.MixDry, prm.MixSlur, prm.MixHFJ = 0, 1, 1
	prm.Gain = MaxGain
	prm.SlurMultiplier = MaxSlurMultiplier
	prm.Acceleration = MaxAcceleration
	prm.BufferLength = MaxBufferLength

	p := newTestProcessor(t)
	buf := testutil.Noise(20000, 42, 1)
	p.Process(buf, &prm)

	testutil.AssertNoNaNOrInf(t, buf)
	testutil.AssertAllInRange(t, buf, -MaxGain, MaxGain)
}

// TestProcess_LengthChangesKeepHeadsInRange shrinks and grows the active
// length while the heads are far into the buffer.
func TestProcess_LengthChangesKeepHeadsInRange(t *testing.T) {
	p := newTestProcessor(t)
	prm := DefaultParams()
	prm.SlurMultiplier = 3
	prm.Acceleration = -777

	lengths := []int{MaxBufferLength, 16, 9000, 17, 512, MaxBufferLength, MinBufferLength}
	for _, length := range lengths {
		prm.BufferLength = length
		buf := testutil.Noise(3*MaxBlockSize, uint32(length), 0.7)
		p.Process(buf, &prm)

		h := p.Heads()
		assert.GreaterOrEqual(t, h.Slur, 0)
		assert.Less(t, h.Slur, length)
		assert.GreaterOrEqual(t, h.HFJ, 0)
		assert.Less(t, h.HFJ, length)
		assert.GreaterOrEqual(t, h.Rate, 0)
		assert.Less(t, h.Rate, RateWrap)
		testutil.AssertNoNaNOrInf(t, buf)
	}
}

func TestProcess_Automation(t *testing.T) {
	const n = 3 * MaxBlockSize
	auto := make(Automation, n)
	for i := range auto {
		auto[i] = DefaultParams()
		auto[i].Gain = 1 + float32(i)/n
	}

	p := newTestProcessor(t)
	buf := testutil.Sine(n, 440, testSampleRate, 0.5)
	p.Process(buf, auto)

	// Reproduce by stepping with the same snapshots.
	ref := newTestProcessor(t)
	want := testutil.Sine(n, 440, testSampleRate, 0.5)
	for i := range want {
		want[i] = ref.Step(want[i], &auto[i])
	}
	testutil.AssertBitExact(t, want, buf)
}

func TestAutomation_RepeatsLastSnapshot(t *testing.T) {
	auto := Automation{DefaultParams(), DefaultParams()}
	auto[1].Gain = 2
	assert.Equal(t, float32(2), auto.At(1).Gain)
	assert.Equal(t, float32(2), auto.At(100).Gain)
}

func TestProcessor_Reset(t *testing.T) {
	p := newTestProcessor(t)
	prm := DefaultParams()

	first := testutil.Noise(500, 5, 0.5)
	a := append([]float32(nil), first...)
	p.Process(a, &prm)

	p.Reset()
	assert.Equal(t, NewHeads(), p.Heads())
	assert.Zero(t, p.SamplesProcessed())

	b := append([]float32(nil), first...)
	p.Process(b, &prm)
	testutil.AssertBitExact(t, a, b)
}

func TestProcessor_Accessors(t *testing.T) {
	p := newTestProcessor(t)
	assert.Equal(t, testSampleRate, p.SampleRate())
	assert.Equal(t, delay.DefaultCapacity, p.Capacity())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "bypassed", StateBypassed.String())
	assert.Equal(t, "State(7)", State(7).String())
}

func TestStep_NoAllocations(t *testing.T) {
	p := newTestProcessor(t)
	prm := DefaultParams()
	buf := testutil.Noise(MaxBlockSize, 11, 0.5)

	allocs := testing.AllocsPerRun(200, func() {
		p.ProcessBlock(buf, &prm, 0)
	})
	assert.Zero(t, allocs)
}

func BenchmarkProcessBlock(b *testing.B) {
	p, err := NewProcessor(testSampleRate, delay.DefaultCapacity)
	if err != nil {
		b.Fatal(err)
	}
	prm := DefaultParams()
	buf := make([]float32, MaxBlockSize)

	b.ReportAllocs()
	for b.Loop() {
		p.ProcessBlock(buf, &prm, 0)
	}
}
