package evenpog

import (
	"fmt"
	"math"

	"github.com/tphakala/go-evenpog/internal/engine"
	"github.com/tphakala/go-evenpog/internal/shaper"
)

// ParamKind is the value type of a parameter.
type ParamKind int

const (
	KindBool ParamKind = iota
	KindInt
	KindFloat
)

func (k ParamKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Stable parameter IDs. Presets are keyed by these and must not change.
const (
	IDBypass         = "bypass"
	IDMixDry         = "drymix"
	IDMixSlur        = "slurmix"
	IDMixHFJ         = "honkforjesusmix"
	IDBufferLength   = "bufferlength"
	IDAcceleration   = "honkforjesusrate"
	IDSlurMultiplier = "slurrate"
	IDGain           = "gain"
)

// BreakpointID returns the stable ID of waveshaper breakpoint i.
func BreakpointID(i int) string {
	return fmt.Sprintf("shavevapor%dy", i)
}

// ParamInfo describes one automatable parameter.
type ParamInfo struct {
	ID      string
	Name    string
	Kind    ParamKind
	Min     float64
	Max     float64
	Default float64

	get func(p *Params) float64
	set func(p *Params, v float64)
}

var paramTable = buildParamTable()

func buildParamTable() []ParamInfo {
	d := engine.DefaultParams()

	table := []ParamInfo{
		{
			ID: IDBypass, Name: "Bypass", Kind: KindBool, Min: 0, Max: 1,
			get: func(p *Params) float64 { return boolToFloat(p.Bypass) },
			set: func(p *Params, v float64) { p.Bypass = v >= 0.5 },
		},
		{
			ID: IDMixDry, Name: "Dry Mix", Kind: KindFloat, Min: engine.MinMix, Max: engine.MaxMix,
			get: func(p *Params) float64 { return float64(p.MixDry) },
			set: func(p *Params, v float64) { p.MixDry = float32(v) },
		},
		{
			ID: IDMixSlur, Name: "Slur Mix", Kind: KindFloat, Min: engine.MinMix, Max: engine.MaxMix,
			get: func(p *Params) float64 { return float64(p.MixSlur) },
			set: func(p *Params, v float64) { p.MixSlur = float32(v) },
		},
		{
			ID: IDMixHFJ, Name: "Honk For Jesus Mix", Kind: KindFloat, Min: engine.MinMix, Max: engine.MaxMix,
			get: func(p *Params) float64 { return float64(p.MixHFJ) },
			set: func(p *Params, v float64) { p.MixHFJ = float32(v) },
		},
		{
			ID: IDBufferLength, Name: "Buffer Length", Kind: KindInt,
			Min: engine.MinBufferLength, Max: engine.MaxBufferLength,
			get: func(p *Params) float64 { return float64(p.BufferLength) },
			set: func(p *Params, v float64) { p.BufferLength = int(v) },
		},
		{
			ID: IDAcceleration, Name: "Buffer Acceleration", Kind: KindInt,
			Min: engine.MinAcceleration, Max: engine.MaxAcceleration,
			get: func(p *Params) float64 { return float64(p.Acceleration) },
			set: func(p *Params, v float64) { p.Acceleration = int(v) },
		},
		{
			ID: IDSlurMultiplier, Name: "Slur Multiplier", Kind: KindFloat,
			Min: engine.MinSlurMultiplier, Max: engine.MaxSlurMultiplier,
			get: func(p *Params) float64 { return float64(p.SlurMultiplier) },
			set: func(p *Params, v float64) { p.SlurMultiplier = float32(v) },
		},
	}

	for i := range shaper.NumBreakpoints {
		table = append(table, ParamInfo{
			ID:   BreakpointID(i),
			Name: fmt.Sprintf("Breakpoint %d (%+.1f)", i, shaper.Edge(i)),
			Kind: KindFloat,
			Min:  engine.MinBreakpoint,
			Max:  engine.MaxBreakpoint,
			get:  func(p *Params) float64 { return float64(p.Breakpoints[i]) },
			set:  func(p *Params, v float64) { p.Breakpoints[i] = float32(v) },
		})
	}

	table = append(table, ParamInfo{
		ID: IDGain, Name: "Gain", Kind: KindFloat, Min: engine.MinGain, Max: engine.MaxGain,
		get: func(p *Params) float64 { return float64(p.Gain) },
		set: func(p *Params, v float64) { p.Gain = float32(v) },
	})

	for i := range table {
		table[i].Default = table[i].get(&d)
	}
	return table
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// ParamInfos returns descriptors for every parameter in display order.
func ParamInfos() []ParamInfo {
	out := make([]ParamInfo, len(paramTable))
	copy(out, paramTable)
	return out
}

// LookupParam returns the descriptor for id.
func LookupParam(id string) (ParamInfo, bool) {
	for _, info := range paramTable {
		if info.ID == id {
			return info, true
		}
	}
	return ParamInfo{}, false
}

// GetParam reads the parameter id from p. Bools read as 0 or 1.
func GetParam(p *Params, id string) (float64, error) {
	info, ok := LookupParam(id)
	if !ok {
		return 0, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParams, id)
	}
	return info.get(p), nil
}

// SetParam writes v to the parameter id in p after a range check.
// Int parameters must be whole numbers.
func SetParam(p *Params, id string, v float64) error {
	info, ok := LookupParam(id)
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidParams, id)
	}
	if math.IsNaN(v) || v < info.Min || v > info.Max {
		return fmt.Errorf("%w: %s must be in [%g, %g]: %g", ErrInvalidParams, id, info.Min, info.Max, v)
	}
	if info.Kind == KindInt && v != float64(int(v)) {
		return fmt.Errorf("%w: %s must be an integer: %g", ErrInvalidParams, id, v)
	}
	info.set(p, v)
	return nil
}
