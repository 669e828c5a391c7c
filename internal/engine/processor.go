// Package engine implements the per-sample signal chain of the effect: the
// delay line with its two read heads, pre-emphasis, DC blocker and waveshaper,
// plus the per-block bypass state machine.
package engine

import (
	"fmt"

	"github.com/tphakala/go-evenpog/internal/delay"
	"github.com/tphakala/go-evenpog/internal/filter"
	"github.com/tphakala/go-evenpog/internal/shaper"
)

// ParamSource yields the parameter snapshot for a sample offset.
// Implementations must be wait-free; the processor calls At once per sample.
type ParamSource interface {
	At(offset int) *Params
}

// State is the bypass state of a processor.
type State int

const (
	// StateActive runs the full signal chain.
	StateActive State = iota

	// StateBypassed passes input through and leaves all state untouched.
	StateBypassed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateBypassed:
		return "bypassed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Processor runs the effect on a single channel.
//
// It exclusively owns its delay line, read heads and filter state, so
// channels and effect instances never interfere. A Processor is not safe for
// concurrent use; all buffers are allocated in NewProcessor and the
// processing methods do not allocate.
type Processor struct {
	line  *delay.Line
	hp    *filter.Highpass
	heads Heads
	curve shaper.Curve
	state State

	sampleRate float64
	samples    int64
}

// NewProcessor creates a processor for the given sample rate with a delay
// line of capacity samples.
func NewProcessor(sampleRate float64, capacity int) (*Processor, error) {
	line, err := delay.New(capacity)
	if err != nil {
		return nil, err
	}

	hp, err := filter.NewHighpass(sampleRate, filter.DefaultCutoffHz)
	if err != nil {
		return nil, err
	}

	bp := shaper.DefaultBreakpoints()
	return &Processor{
		line:       line,
		hp:         hp,
		heads:      NewHeads(),
		curve:      shaper.NewCurve(&bp),
		sampleRate: sampleRate,
	}, nil
}

// Step runs one input sample through the active signal chain and advances
// the read heads.
func (p *Processor) Step(x float32, prm *Params) float32 {
	p.line.SetLength(prm.BufferLength)
	length := p.line.Len()
	p.heads = p.heads.Fold(length)

	p.line.Write(x)

	s := p.line.Read(p.heads.Slur)*prm.MixSlur + p.line.Read(p.heads.HFJ)*prm.MixHFJ
	filtered := p.hp.Process(shaper.PreEmphasis(s))

	p.curve.Set(&prm.Breakpoints)
	y := prm.MixDry*x + prm.Gain*p.curve.Apply(filtered)

	p.heads = p.heads.Advance(prm.SlurMultiplier, prm.Acceleration, length)
	p.samples++
	return y
}

// ProcessBlock processes up to MaxBlockSize samples in place. The bypass
// flag is read once, from the snapshot at offset; toggling it inside a block
// takes effect on the next block. It returns the state the block ran in.
func (p *Processor) ProcessBlock(block []float32, src ParamSource, offset int) State {
	if src.At(offset).Bypass {
		p.state = StateBypassed
		return p.state
	}

	p.state = StateActive
	for i, x := range block {
		block[i] = p.Step(x, src.At(offset+i))
	}
	return p.state
}

// Process splits buf into blocks of MaxBlockSize and processes them in place.
// Offsets passed to src are relative to the start of buf.
func (p *Processor) Process(buf []float32, src ParamSource) {
	for start := 0; start < len(buf); start += MaxBlockSize {
		end := min(start+MaxBlockSize, len(buf))
		p.ProcessBlock(buf[start:end], src, start)
	}
}

// State returns the state of the most recent block.
func (p *Processor) State() State {
	return p.state
}

// Heads returns the current read head state.
func (p *Processor) Heads() Heads {
	return p.heads
}

// SampleRate returns the sample rate the filter was designed for.
func (p *Processor) SampleRate() float64 {
	return p.sampleRate
}

// Capacity returns the delay line capacity.
func (p *Processor) Capacity() int {
	return p.line.Cap()
}

// SamplesProcessed returns the number of samples run through the active chain.
func (p *Processor) SamplesProcessed() int64 {
	return p.samples
}

// Reset restores the processor to its freshly constructed state.
func (p *Processor) Reset() {
	p.line.Reset()
	p.line.SetLength(p.line.Cap())
	p.hp.Reset()
	p.heads = NewHeads()
	p.state = StateActive
	p.samples = 0
}
