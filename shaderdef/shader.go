package shaderdef

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Shader describes the inputs and vertex needs of one engine shader.
type Shader struct {
	Name      string   `yaml:"name"`
	FileNames []string `yaml:"filenames,omitempty"`

	// Render buckets as hex digits, the way the engine lists them.
	RenderBucket []string `yaml:"render_bucket,omitempty"`
	BufferSizes  []int    `yaml:"buffer_sizes,omitempty"`

	Tangents  []string `yaml:"tangents,omitempty"`
	Normal    bool     `yaml:"normal,omitempty"`
	TexCoords []string `yaml:"texcoords,omitempty"`
	Colours   []string `yaml:"colours,omitempty"`

	Parameters []*Parameter `yaml:"parameters"`

	byName map[string]*Parameter
}

func (s *Shader) index() error {
	s.byName = make(map[string]*Parameter, len(s.Parameters))
	for _, p := range s.Parameters {
		if p.Name == "" {
			return errors.Errorf("shader %s has a parameter without name", s.Name)
		}
		if _, dup := s.byName[p.Name]; dup {
			return errors.Errorf("shader %s declares parameter %s twice", s.Name, p.Name)
		}
		s.byName[p.Name] = p
	}
	return nil
}

func (s *Shader) Parameter(name string) (*Parameter, bool) {
	if s.byName == nil {
		if err := s.index(); err != nil {
			return nil, false
		}
	}
	p, ok := s.byName[name]
	return p, ok
}

func (s *Shader) RequiredTangent() bool {
	return len(s.Tangents) > 0
}

func (s *Shader) RequiredTangents() []string {
	return s.Tangents
}

func (s *Shader) RequiredNormal() bool {
	return s.Normal
}

func (s *Shader) UsesTexCoord(name string) bool {
	return contains(s.TexCoords, name)
}

func (s *Shader) UsesColour(name string) bool {
	return contains(s.Colours, name)
}

// DrawBucketFlag reads the first render bucket as hex and tests its high bit.
func (s *Shader) DrawBucketFlag() (bool, error) {
	if len(s.RenderBucket) == 0 {
		return false, nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s.RenderBucket[0]), 16, 32)
	if err != nil {
		return false, errors.Wrapf(err, "shader %s render bucket", s.Name)
	}
	return v&0x80 != 0, nil
}

// BufferSizeString joins buffer sizes with spaces.
func (s *Shader) BufferSizeString() string {
	parts := make([]string, len(s.BufferSizes))
	for i, size := range s.BufferSizes {
		parts[i] = strconv.Itoa(size)
	}
	return strings.Join(parts, " ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
