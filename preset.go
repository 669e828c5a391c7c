package evenpog

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset file keys outside the parameter set.
const presetNameKey = "name"

// MarshalPreset encodes p as a YAML mapping keyed by parameter ID.
// Floats are written with the shortest representation that parses back to
// the same float32, so a save/load cycle is exact.
func MarshalPreset(name string, p *Params) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	if name != "" {
		doc.Content = append(doc.Content, scalar("!!str", presetNameKey), scalar("!!str", name))
	}

	for _, info := range paramTable {
		doc.Content = append(doc.Content, scalar("!!str", info.ID), encodeValue(info, p))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode preset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode preset: %w", err)
	}
	return buf.Bytes(), nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func encodeValue(info ParamInfo, p *Params) *yaml.Node {
	v := info.get(p)
	switch info.Kind {
	case KindBool:
		return scalar("!!bool", strconv.FormatBool(v != 0))
	case KindInt:
		return scalar("!!int", strconv.Itoa(int(v)))
	default:
		s := strconv.FormatFloat(float64(float32(v)), 'g', -1, 32)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return scalar("!!float", s)
	}
}

// UnmarshalPreset decodes a preset on top of base. Keys may appear in any
// order; unknown keys are ignored and missing keys keep the value from base.
// The result is range checked; on error base is left unchanged.
func UnmarshalPreset(data []byte, base *Params) (name string, err error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w: malformed preset: %v", ErrInvalidParams, err)
	}

	p := *base
	for _, info := range paramTable {
		node, ok := doc[info.ID]
		if !ok {
			continue
		}
		v, err := decodeValue(info, &node)
		if err != nil {
			return "", err
		}
		info.set(&p, v)
	}

	if err := p.Validate(); err != nil {
		return "", err
	}

	if node, ok := doc[presetNameKey]; ok {
		name = node.Value
	}
	*base = p
	return name, nil
}

func decodeValue(info ParamInfo, node *yaml.Node) (float64, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("%w: %s must be a scalar", ErrInvalidParams, info.ID)
	}

	switch info.Kind {
	case KindBool:
		var b bool
		if err := node.Decode(&b); err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidParams, info.ID, err)
		}
		return boolToFloat(b), nil
	case KindInt:
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer: %q", ErrInvalidParams, info.ID, node.Value)
		}
		return float64(n), nil
	default:
		f, err := strconv.ParseFloat(node.Value, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number: %q", ErrInvalidParams, info.ID, node.Value)
		}
		return f, nil
	}
}

// SavePreset writes p to w as YAML.
func SavePreset(w io.Writer, name string, p *Params) error {
	data, err := MarshalPreset(name, p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// LoadPreset reads a YAML preset from r on top of base.
func LoadPreset(r io.Reader, base *Params) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read preset: %w", err)
	}
	return UnmarshalPreset(data, base)
}
