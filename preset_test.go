package evenpog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetRoundTrip(t *testing.T) {
	p := DefaultParams()
	p.Bypass = true
	p.MixDry = 0.1
	p.MixSlur = 1.0 / 3
	p.MixHFJ = 0.7071
	p.BufferLength = 16384
	p.Acceleration = -1000
	p.SlurMultiplier = 9.999
	p.Gain = 23.5
	for i := range p.Breakpoints {
		p.Breakpoints[i] = float32(i)/7 - 0.61
	}
	require.NoError(t, p.Validate())

	var buf bytes.Buffer
	require.NoError(t, SavePreset(&buf, "smear", &p))

	got := DefaultParams()
	name, err := LoadPreset(&buf, &got)
	require.NoError(t, err)

	assert.Equal(t, "smear", name)
	assert.Equal(t, p, got)
}

func TestPresetEncoding(t *testing.T) {
	p := DefaultParams()
	data, err := MarshalPreset("", &p)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "slurrate: 1.2\n")
	assert.Contains(t, text, "gain: 1.0\n")
	assert.Contains(t, text, "bufferlength: 512\n")
	assert.Contains(t, text, "bypass: false\n")
	assert.Contains(t, text, "shavevapor0y: -1.0\n")
	assert.NotContains(t, text, "name:")
}

func TestPresetPartial(t *testing.T) {
	doc := `
unknownkey: 42
drymix: 0.25
honkforjesusrate: -5
`
	p := DefaultParams()
	_, err := UnmarshalPreset([]byte(doc), &p)
	require.NoError(t, err)

	want := DefaultParams()
	want.MixDry = 0.25
	want.Acceleration = -5
	assert.Equal(t, want, p)
}

func TestPresetOrderIndependent(t *testing.T) {
	a := "gain: 2.0\nslurrate: 3.0\nshavevapor2y: 0.1\n"
	b := "shavevapor2y: 0.1\ngain: 2\nslurrate: 3\n"

	pa, pb := DefaultParams(), DefaultParams()
	_, err := UnmarshalPreset([]byte(a), &pa)
	require.NoError(t, err)
	_, err = UnmarshalPreset([]byte(b), &pb)
	require.NoError(t, err)

	assert.Equal(t, pa, pb)
	assert.InDelta(t, 3, pa.SlurMultiplier, 0)
}

func TestPresetRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"gain_out_of_range", "gain: 30"},
		{"length_out_of_range", "bufferlength: 99999"},
		{"fractional_length", "bufferlength: 12.5"},
		{"mix_not_a_number", "drymix: loud"},
		{"bypass_not_bool", "bypass: sometimes"},
		{"nested_value", "gain:\n  value: 1"},
		{"malformed", "gain: [1"},
		{"not_a_mapping", "- 1\n- 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			_, err := LoadPreset(strings.NewReader(tt.doc), &p)
			require.ErrorIs(t, err, ErrInvalidParams)
			assert.Equal(t, DefaultParams(), p, "failed load must not modify params")
		})
	}
}

func TestPresetEmpty(t *testing.T) {
	p := DefaultParams()
	p.Gain = 5

	name, err := UnmarshalPreset(nil, &p)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.InDelta(t, 5, p.Gain, 0)
}
