package shaderdef

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ParameterType is the closed set of parameter kinds a shader may declare.
// The zero value marks a definition whose type was never given.
type ParameterType int

const (
	ParameterNone ParameterType = iota
	ParameterTexture
	ParameterFloat
	ParameterFloat2
	ParameterFloat3
	ParameterFloat4
	ParameterFloat4x4
	ParameterSampler
	ParameterCBuffer
	ParameterUnknown
)

var parameterTypeNames = map[ParameterType]string{
	ParameterNone:     "none",
	ParameterTexture:  "texture",
	ParameterFloat:    "float",
	ParameterFloat2:   "float2",
	ParameterFloat3:   "float3",
	ParameterFloat4:   "float4",
	ParameterFloat4x4: "float4x4",
	ParameterSampler:  "sampler",
	ParameterCBuffer:  "cbuffer",
	ParameterUnknown:  "unknown",
}

func (t ParameterType) String() string {
	if name, ok := parameterTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

// IsFloatVector reports float through float4, the types packed as vectors.
func (t ParameterType) IsFloatVector() bool {
	return t >= ParameterFloat && t <= ParameterFloat4
}

// Columns is the component count of a float vector type.
func (t ParameterType) Columns() int {
	if t.IsFloatVector() {
		return int(t-ParameterFloat) + 1
	}
	return 0
}

func ParseParameterType(s string) (ParameterType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range parameterTypeNames {
		if t != ParameterNone && name == s {
			return t, nil
		}
	}
	return ParameterNone, errors.Errorf("Unknown shader parameter type %q", s)
}

func (t ParameterType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *ParameterType) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseParameterType(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*t = parsed
	return nil
}

// Parameter is one declared shader input.
type Parameter struct {
	Name string        `yaml:"name"`
	Type ParameterType `yaml:"type"`

	// Count > 0 turns a float vector into an array of Count vectors.
	Count int `yaml:"count,omitempty"`

	// Sampler and unknown slots.
	Index int `yaml:"index,omitempty"`

	// CBuffer placement and default value.
	Buffer    int           `yaml:"buffer,omitempty"`
	Offset    int           `yaml:"offset,omitempty"`
	Length    int           `yaml:"length,omitempty"`
	ValueType ParameterType `yaml:"value_type,omitempty"`

	X float32 `yaml:"x,omitempty"`
	Y float32 `yaml:"y,omitempty"`
	Z float32 `yaml:"z,omitempty"`
	W float32 `yaml:"w,omitempty"`
}

func (p *Parameter) IsArray() bool {
	return p.Type.IsFloatVector() && p.Count > 0
}

// Defaults returns the default value components, zeroed past the width of
// the cbuffer value type.
func (p *Parameter) Defaults() [4]float32 {
	v := [4]float32{p.X, p.Y, p.Z, p.W}
	for i := p.ValueType.Columns(); i < 4; i++ {
		v[i] = 0
	}
	return v
}
