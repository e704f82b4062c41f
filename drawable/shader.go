package drawable

import "github.com/go-gl/mathgl/mgl32"

type ShaderGroup struct {
	Shaders []*Shader
	// Nil means the dictionary element is left out.
	Textures  []*Texture
	Unknown30 int
}

type Shader struct {
	Name string

	// gta
	FileName     string
	RenderBucket int

	// rdr
	DrawBucket     int
	DrawBucketFlag bool
	BufferSizes    string

	Parameters []Parameter
}

// Find returns the index of the parameter called name, or -1.
func (s *Shader) Find(name string) int {
	for i, p := range s.Parameters {
		if p.ParameterName() == name {
			return i
		}
	}
	return -1
}

// Set replaces the parameter with the same name in place or appends it.
func (s *Shader) Set(p Parameter) {
	if i := s.Find(p.ParameterName()); i >= 0 {
		s.Parameters[i] = p
		return
	}
	s.Parameters = append(s.Parameters, p)
}

type Texture struct {
	Name string

	// gta
	FileName   string
	Width      int
	Height     int
	MipLevels  int
	Format     string
	Usage      string
	UsageFlags []string
	ExtraFlags int

	// rdr
	Flags int
}

// Parameter is one of the parameter records below.
type Parameter interface {
	ParameterName() string
	isParameter()
}

type TextureParameter struct {
	Name        string
	TextureName string
	// rdr sampler slot and flags
	Index int
	Flags int
}

type VectorParameter struct {
	Name  string
	Value mgl32.Vec4
}

type ArrayParameter struct {
	Name   string
	Values []mgl32.Vec4
}

type CBufferParameter struct {
	Name   string
	Buffer int
	Offset int
	Length int
	// Number of meaningful components in Value.
	Components int
	Value      mgl32.Vec4
}

type SamplerParameter struct {
	Name    string
	Index   int
	Sampler float32
}

type UnknownParameter struct {
	Name  string
	Index int
}

func (p *TextureParameter) ParameterName() string { return p.Name }
func (p *VectorParameter) ParameterName() string  { return p.Name }
func (p *ArrayParameter) ParameterName() string   { return p.Name }
func (p *CBufferParameter) ParameterName() string { return p.Name }
func (p *SamplerParameter) ParameterName() string { return p.Name }
func (p *UnknownParameter) ParameterName() string { return p.Name }

func (*TextureParameter) isParameter() {}
func (*VectorParameter) isParameter()  {}
func (*ArrayParameter) isParameter()   {}
func (*CBufferParameter) isParameter() {}
func (*SamplerParameter) isParameter() {}
func (*UnknownParameter) isParameter() {}
