package shaderdef

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/drawable_exporter/config"
)

// Library holds the shader definitions of both games. It is read only after
// loading and may be shared between exports.
type Library struct {
	GTA []*Shader `yaml:"gta"`
	RDR []*Shader `yaml:"rdr"`

	byFile map[string]*Shader
	byName map[config.Game]map[string]*Shader
}

func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening shader definitions %s", path)
	}
	defer f.Close()
	lib, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading shader definitions %s", path)
	}
	return lib, nil
}

func Parse(data []byte) (*Library, error) {
	return Load(bytes.NewReader(data))
}

func Load(r io.Reader) (*Library, error) {
	lib := &Library{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(lib); err != nil && err != io.EOF {
		return nil, err
	}
	if err := lib.index(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) index() error {
	l.byFile = make(map[string]*Shader)
	l.byName = map[config.Game]map[string]*Shader{
		config.GameGTA: make(map[string]*Shader),
		config.GameRDR: make(map[string]*Shader),
	}
	for _, game := range []config.Game{config.GameGTA, config.GameRDR} {
		for _, s := range l.Shaders(game) {
			if err := s.index(); err != nil {
				return err
			}
			l.byName[game][strings.ToLower(s.Name)] = s
			if game == config.GameGTA {
				for _, fn := range s.FileNames {
					l.byFile[strings.ToLower(fn)] = s
				}
			}
		}
	}
	return nil
}

func (l *Library) Shaders(game config.Game) []*Shader {
	switch game {
	case config.GameGTA:
		return l.GTA
	case config.GameRDR:
		return l.RDR
	}
	return nil
}

// Find looks a shader up the way each engine names them: GTA materials
// reference a shader file name, RDR materials the shader name. GTA falls back
// to the plain name. A nil library finds nothing.
func (l *Library) Find(game config.Game, name string) *Shader {
	if l == nil {
		return nil
	}
	if l.byName == nil {
		if err := l.index(); err != nil {
			return nil
		}
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if game == config.GameGTA {
		if s, ok := l.byFile[key]; ok {
			return s
		}
		if s, ok := l.byFile[key+".sps"]; ok {
			return s
		}
	}
	return l.byName[game][key]
}
