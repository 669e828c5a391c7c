// Package delay implements the fixed-capacity sample ring used by the
// processor's read heads.
package delay

import (
	"fmt"
)

// Line is a circular delay line with a fixed physical capacity and a
// logical (active) length that may change between samples.
//
// All indices are derived from the current active length at the time of the
// call. Storage is allocated once in New and never resized, so Write and Read
// are safe to call from a real-time callback.
//
// A Line is owned by exactly one processor and is not safe for concurrent use.
type Line struct {
	data       []float32
	length     int
	writeCount uint64
}

// New creates a delay line with the given capacity. The active length starts
// at the full capacity.
func New(capacity int) (*Line, error) {
	if capacity < MinLength {
		return nil, fmt.Errorf("delay capacity must be >= %d: %d", MinLength, capacity)
	}

	return &Line{
		data:   make([]float32, capacity),
		length: capacity,
	}, nil
}

// Cap returns the physical capacity in samples.
func (l *Line) Cap() int {
	return len(l.data)
}

// Len returns the active length.
func (l *Line) Len() int {
	return l.length
}

// SetLength changes the active length, clamped to [MinLength, Cap()].
// Samples stored beyond the new length are kept but become unreachable
// until the line grows again.
func (l *Line) SetLength(n int) {
	switch {
	case n < MinLength:
		n = MinLength
	case n > len(l.data):
		n = len(l.data)
	}
	l.length = n
}

// WriteCount returns the number of samples written since construction or
// the last Reset.
func (l *Line) WriteCount() uint64 {
	return l.writeCount
}

// Write stores sample at writeCount mod Len() and advances the write count.
func (l *Line) Write(sample float32) {
	l.data[l.writeCount%uint64(l.length)] = sample
	l.writeCount++
}

// Read returns the sample stored at ring index idx.
// The caller guarantees 0 <= idx < Len().
func (l *Line) Read(idx int) float32 {
	return l.data[idx]
}

// ReadDelayed returns the sample written k writes ago, where k = 0 is the
// most recent write. The caller guarantees 0 <= k < Len().
func (l *Line) ReadDelayed(k int) float32 {
	n := uint64(l.length)
	last := (l.writeCount + n - 1) % n
	return l.data[(last+n-uint64(k))%n]
}

// Reset zeroes the storage and the write count. The active length is kept.
func (l *Line) Reset() {
	clear(l.data)
	l.writeCount = 0
}
