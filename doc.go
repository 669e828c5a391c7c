// Package evenpog implements a real-time delay-line octave and pitch-smear
// distortion in pure Go.
//
// Every input sample is written into a ring buffer that is read back by two
// independently scheduled heads. The slur head multiplies its position by a
// constant each sample, folding back into the buffer, which smears the
// signal across octaves. The HFJ ("honk for jesus") head walks backwards with
// an accelerating rate, sweeping the pitch. The mixed heads are shaped by a
// fixed pre-emphasis polynomial, a 20 Hz DC blocker and a ten-point
// piecewise-linear waveshaper, then scaled by the output gain and summed with
// the dry signal.
//
// # Quick Start
//
// For simple one-shot processing with the factory settings:
//
//	p := evenpog.DefaultParams()
//	output, err := evenpog.ProcessMono(input, 48000, &p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming with a reusable effect:
//
//	e, err := evenpog.New(&evenpog.Config{
//	    SampleRate: 48000,
//	    Channels:   2,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := evenpog.DefaultParams()
//	p.SlurMultiplier = 2
//	for block := range audioBlocks {
//	    if err := e.Process(block, &p); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Parameters
//
// [Params] is a plain value; the effect reads it once per sample and never
// writes to it. A *Params is a static [ParamSource]. Sample-accurate
// automation is supplied with [Automation], one snapshot per sample.
// [ParamInfos] lists every parameter with its stable ID, range and default.
//
// Bypass is evaluated at the start of each block of at most [MaxBlockSize]
// samples. While bypassed the input passes through untouched and the delay
// line, read heads and filter keep their state.
//
// # Presets
//
// [SavePreset] and [LoadPreset] persist parameters as a YAML mapping keyed by
// parameter ID:
//
//	drymix: 0.5
//	slurrate: 1.2
//	bufferlength: 512
//
// Keys are order independent, unknown keys are ignored and missing keys keep
// their current value.
//
// # Thread Safety
//
// An [Effect] is not safe for concurrent use. Separate effects share no state.
// With [Config.EnableParallel] the channels of one Process call run on
// separate goroutines; the output is identical to sequential processing.
package evenpog
