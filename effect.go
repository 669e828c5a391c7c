package evenpog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tphakala/go-evenpog/internal/engine"
	"github.com/tphakala/go-evenpog/internal/shaper"
	"github.com/tphakala/go-evenpog/internal/simdops"
)

// Params is the parameter snapshot read once per sample. See DefaultParams
// for the factory settings and ParamInfos for ranges and persistent IDs.
type Params = engine.Params

// Breakpoints are the ten waveshaper curve values.
type Breakpoints = shaper.Breakpoints

// ParamSource yields the snapshot for a sample offset within a Process call.
// A *Params is a static source; Automation supplies one snapshot per sample.
type ParamSource = engine.ParamSource

// Automation is a per-sample sequence of snapshots.
type Automation = engine.Automation

// State is the bypass state of a channel.
type State = engine.State

const (
	// StateActive runs the full signal chain.
	StateActive = engine.StateActive

	// StateBypassed passes input through untouched.
	StateBypassed = engine.StateBypassed
)

// DefaultParams returns the factory settings.
func DefaultParams() Params {
	return engine.DefaultParams()
}

// Config holds effect configuration.
type Config struct {
	// SampleRate is the host sample rate in Hz. It sets the DC blocker's
	// feedback coefficient.
	SampleRate float64

	// Channels is the number of audio channels to process. Every channel
	// gets its own delay line, read heads and filter state.
	Channels int

	// Capacity is the delay line capacity in samples. Set to 0 to use
	// DefaultCapacity. Params.BufferLength is clamped to it.
	Capacity int

	// EnableParallel processes channels concurrently using goroutines.
	// Output is bit-identical to sequential processing. Intended for offline
	// rendering; a real-time host should leave it off.
	EnableParallel bool
}

// Common errors returned by the effect.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid effect configuration")

	// ErrChannelMismatch indicates a buffer layout that does not match the configuration.
	ErrChannelMismatch = errors.New("channel layout mismatch")

	// ErrInvalidParams indicates a parameter outside its range.
	ErrInvalidParams = engine.ErrInvalidParams
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate < minSampleRate || c.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate must be in [%g, %g]", ErrInvalidConfig, minSampleRate, maxSampleRate)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	if c.Capacity != 0 && (c.Capacity < engine.MinBufferLength || c.Capacity > engine.MaxBufferLength) {
		return fmt.Errorf("%w: capacity must be in [%d, %d]", ErrInvalidConfig,
			engine.MinBufferLength, engine.MaxBufferLength)
	}

	return nil
}

// Effect is one instance of the effect with per-channel state.
//
// Calls to Process and Reset on the same Effect must be serialized.
// Separate Effects share nothing and may run concurrently.
type Effect struct {
	config   Config
	channels []*engine.Processor
}

// New creates an effect with the specified configuration.
func New(config *Config) (*Effect, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := *config
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}

	e := &Effect{
		config:   cfg,
		channels: make([]*engine.Processor, cfg.Channels),
	}
	for ch := range e.channels {
		p, err := engine.NewProcessor(cfg.SampleRate, cfg.Capacity)
		if err != nil {
			return nil, fmt.Errorf("failed to create processor for channel %d: %w", ch, err)
		}
		e.channels[ch] = p
	}

	return e, nil
}

// Process runs every channel of buf through the effect in place.
// Each channel is processed in blocks of MaxBlockSize; the bypass flag is
// read from src at the first sample of every block.
func (e *Effect) Process(buf [][]float32, src ParamSource) error {
	if err := e.checkLayout(len(buf), func(ch int) int { return len(buf[ch]) }); err != nil {
		return err
	}

	if !e.config.EnableParallel || len(buf) <= 1 {
		for ch, samples := range buf {
			e.channels[ch].Process(samples, src)
		}
		return nil
	}

	var wg sync.WaitGroup
	for ch, samples := range buf {
		wg.Add(1)
		go func(channel int, samples []float32) {
			defer wg.Done()
			e.channels[channel].Process(samples, src)
		}(ch, samples)
	}
	wg.Wait()

	return nil
}

// ProcessFloat64 is like Process for float64 buffers. Samples are narrowed to
// float32 for processing, so this path allocates a scratch buffer per call.
func (e *Effect) ProcessFloat64(buf [][]float64, src ParamSource) error {
	if err := e.checkLayout(len(buf), func(ch int) int { return len(buf[ch]) }); err != nil {
		return err
	}

	scratch := make([][]float32, len(buf))
	for ch, samples := range buf {
		scratch[ch] = make([]float32, len(samples))
		for i, v := range samples {
			scratch[ch][i] = float32(v)
		}
	}

	if err := e.Process(scratch, src); err != nil {
		return err
	}

	for ch, samples := range scratch {
		for i, v := range samples {
			buf[ch][i] = float64(v)
		}
	}
	return nil
}

func (e *Effect) checkLayout(channels int, length func(ch int) int) error {
	if channels != len(e.channels) {
		return fmt.Errorf("%w: expected %d channels, got %d", ErrChannelMismatch, len(e.channels), channels)
	}
	for ch := 1; ch < channels; ch++ {
		if length(ch) != length(0) {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelMismatch, ch, length(ch), length(0))
		}
	}
	return nil
}

// Reset clears all delay lines, read heads and filter state.
func (e *Effect) Reset() {
	for _, p := range e.channels {
		p.Reset()
	}
}

// State returns the bypass state of the most recent block on channel ch.
func (e *Effect) State(ch int) State {
	return e.channels[ch].State()
}

// Channels returns the configured channel count.
func (e *Effect) Channels() int {
	return len(e.channels)
}

// SampleRate returns the configured sample rate.
func (e *Effect) SampleRate() float64 {
	return e.config.SampleRate
}

// Info describes an effect instance.
type Info struct {
	Channels     int
	SampleRate   float64
	Capacity     int   // Delay line capacity per channel
	MaxBlockSize int   // Samples per bypass decision
	MemoryUsage  int64 // Approximate delay storage in bytes
	Parallel     bool
	SIMDType     string // Instruction set used by block helpers
}

// GetInfo returns information about the effect.
func (e *Effect) GetInfo() Info {
	return Info{
		Channels:     len(e.channels),
		SampleRate:   e.config.SampleRate,
		Capacity:     e.config.Capacity,
		MaxBlockSize: MaxBlockSize,
		MemoryUsage:  int64(len(e.channels)) * int64(e.config.Capacity) * bytesPerFloat32,
		Parallel:     e.config.EnableParallel,
		SIMDType:     simdops.Info(),
	}
}
