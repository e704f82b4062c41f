package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings controls a single export call.
type Settings struct {
	Game                 Game          `yaml:"game"`
	ApplyTransforms      bool          `yaml:"apply_transforms"`
	AutoCalculateVolume  bool          `yaml:"auto_calculate_volume"`
	AutoCalculateInertia bool          `yaml:"auto_calculate_inertia"`
	SplitByVertexCount   bool          `yaml:"split_by_vertex_count"`
	JoinSkinnedModels    bool          `yaml:"join_skinned_models"`
	Encoding             string        `yaml:"encoding"`
	ShaderDefinitions    string        `yaml:"shader_definitions"`
	Logging              LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() *Settings {
	return &Settings{
		Game:     GameGTA,
		Encoding: DefaultEncoding,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFile applies the yaml file on top of the defaults.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing settings %s", path)
	}
	return s, nil
}

func Parse(data []byte) (*Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, err
	}
	if _, err := FindEncoding(s.Encoding); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshaling settings")
	}
	return os.WriteFile(path, data, 0666)
}
