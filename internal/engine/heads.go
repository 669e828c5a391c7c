package engine

// Heads is the state of the two read cursors over the delay line.
//
// The slur head follows a multiplicative recurrence that escalates or
// collapses depending on the multiplier; the HFJ (honk-for-jesus) head sweeps
// backwards by an accelerating rate. Heads is a plain value: Advance returns
// the next state and never mutates the receiver.
type Heads struct {
	Slur int // Slur read index, in [0, length)
	HFJ  int // HFJ read index, in [0, length)
	Rate int // HFJ step in samples, in [0, RateWrap)
}

// NewHeads returns the heads of a fresh processor.
func NewHeads() Heads {
	return Heads{Rate: InitialRate}
}

// Fold re-derives both positions modulo length. It must be applied whenever
// the active length may have shrunk since the last Advance.
func (h Heads) Fold(length int) Heads {
	h.Slur = wrap(h.Slur, length)
	h.HFJ = wrap(h.HFJ, length)
	return h
}

// Advance moves both heads one sample forward.
func (h Heads) Advance(slurMultiplier float32, acceleration, length int) Heads {
	return Heads{
		Slur: NextSlur(h.Slur, slurMultiplier, length),
		HFJ:  NextHFJ(h.HFJ, h.Rate, length),
		Rate: NextRate(h.Rate, acceleration),
	}
}

// NextSlur computes the next slur position:
//
//	candidate = position * multiplier
//	if candidate < 0.1 { candidate = 1 }
//	position  = floor(candidate) mod length
//
// The product is taken in float32 so the sequence is reproducible bit for bit.
func NextSlur(position int, multiplier float32, length int) int {
	candidate := float32(position) * multiplier
	if candidate < slurStallThreshold {
		candidate = slurResetValue
	}
	return int(candidate) % length
}

// NextHFJ steps the HFJ position back by rate, wrapping into [0, length).
func NextHFJ(position, rate, length int) int {
	return wrap(length+position-rate, length)
}

// NextRate applies the acceleration: |rate + acceleration| mod RateWrap.
func NextRate(rate, acceleration int) int {
	r := rate + acceleration
	if r < 0 {
		r = -r
	}
	return r % RateWrap
}

// wrap is the euclidean remainder of x by n (n > 0).
func wrap(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
