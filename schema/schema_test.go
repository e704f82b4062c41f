package schema

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/shaderdef"
	"github.com/mogaika/drawable_exporter/vertex"
)

func fullBuffer(tangents ...string) *vertex.Buffer {
	attrs := []vertex.Attribute{
		{Name: "Position", Type: vertex.Float32, Components: 3},
		{Name: "Normal", Type: vertex.Float32, Components: 3},
		{Name: "Colour0", Type: vertex.UNorm8, Components: 4},
		{Name: "Colour1", Type: vertex.UNorm8, Components: 4},
		{Name: "TexCoord0", Type: vertex.Float32, Components: 2},
		{Name: "TexCoord1", Type: vertex.Float32, Components: 2},
	}
	for _, name := range tangents {
		attrs = append(attrs, vertex.Attribute{Name: name, Type: vertex.Float32, Components: 4})
	}
	return vertex.NewBuffer(vertex.MustLayout(attrs...), 1)
}

func TestShaderGroupUnknown30(t *testing.T) {
	for n, want := range map[int]int{1: 8, 2: 11, 3: 15, 4: 18, 5: 22, 6: 25} {
		if got := ShaderGroupUnknown30(n); got != want {
			t.Errorf("ShaderGroupUnknown30(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestGTAStripAttributes(t *testing.T) {
	s, _ := For(config.GameGTA)
	tests := []struct {
		name string
		def  *shaderdef.Shader
		want []string
	}{
		{"missing definition", nil, []string{"Position", "TexCoord0"}},
		{"normal map", &shaderdef.Shader{
			Tangents:  []string{"Tangent"},
			Normal:    true,
			TexCoords: []string{"TexCoord0", "TexCoord1"},
			Colours:   []string{"Colour0"},
		}, []string{"Position", "Normal", "Colour0", "TexCoord0", "TexCoord1", "Tangent"}},
	}
	for _, tt := range tests {
		got := s.StripAttributes(fullBuffer("Tangent"), tt.def).Layout.Names()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: layout = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRDRStripTangents(t *testing.T) {
	s, _ := For(config.GameRDR)
	got := s.StripAttributes(fullBuffer("Tangent0", "Tangent1"), nil).Layout.Names()
	want := []string{"Position", "Normal", "Colour0", "Colour1", "TexCoord0", "TexCoord1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("without definition = %v, want %v", got, want)
	}

	got = s.StripAttributes(fullBuffer("Tangent0", "Tangent1"), &shaderdef.Shader{Tangents: []string{"Tangent1"}}).Layout.Names()
	want = append(want, "Tangent1")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("with tangent1 = %v, want %v", got, want)
	}
}

func TestRDRDescribeLayout(t *testing.T) {
	s, _ := For(config.GameRDR)
	l := vertex.MustLayout(
		vertex.Attribute{Name: "Position", Type: vertex.Float32, Components: 3},
		vertex.Attribute{Name: "BlendWeights", Type: vertex.UNorm8, Components: 4},
		vertex.Attribute{Name: "BlendIndices", Type: vertex.UInt16, Components: 4},
		vertex.Attribute{Name: "Normal", Type: vertex.Float32, Components: 3},
		vertex.Attribute{Name: "Colour0", Type: vertex.UNorm8, Components: 4},
		vertex.Attribute{Name: "TexCoord0", Type: vertex.Float32, Components: 2},
		vertex.Attribute{Name: "Tangent0", Type: vertex.Float32, Components: 4},
	)
	vl := s.DescribeLayout(l)
	if vl.Semantics != "PWINCTX" || vl.Formats != "3569529" || !vl.NonInterleaved {
		t.Errorf("layout = %+v", vl)
	}

	g := &drawable.Geometry{Vertices: vertex.NewBuffer(l, 0)}
	s.DecorateGeometry(g, &scene.Material{ShaderName: "terrain_uber_4lyr"}, 3)
	if g.ColourSemantic != 1 || g.BoneCount != 3 || g.VertexLayout == nil {
		t.Errorf("decorated geometry = %+v", g)
	}
}

func TestTransformUnk(t *testing.T) {
	g, _ := For(config.GameGTA)
	r, _ := For(config.GameRDR)
	q := mgl32.QuatIdent()
	if got := g.TransformUnk(q); got != (mgl32.Vec4{0, 4, -3, 0}) {
		t.Errorf("gta = %v", got)
	}
	if got := r.TransformUnk(q); got != (mgl32.Vec4{0, 4, -3, 0}) {
		t.Errorf("rdr identity = %v", got)
	}
	half := mgl32.Quat{W: 0.5}
	if got := r.TransformUnk(half); got != (mgl32.Vec4{0, 1, 0, 0}) {
		t.Errorf("rdr w=0.5 = %v", got)
	}
}

func TestRDRTextureParameter(t *testing.T) {
	s, _ := For(config.GameRDR)
	p := s.TextureParameter(&scene.ImageNode{Name: "diffuse", TextureName: "None", Index: 3, ExtraFlags: 5})
	if p.TextureName != "" || p.Flags != 0 || p.Index != 3 {
		t.Errorf("None texture = %+v", p)
	}
	p = s.TextureParameter(&scene.ImageNode{Name: "diffuse", TextureName: "wood", ExtraFlags: 5})
	if p.TextureName != "wood" || p.Flags != 5 {
		t.Errorf("wood texture = %+v", p)
	}
}

func TestFinishShaderGroupTextures(t *testing.T) {
	g, _ := For(config.GameGTA)
	r, _ := For(config.GameRDR)

	sg := &drawable.ShaderGroup{Shaders: []*drawable.Shader{{}}, Textures: []*drawable.Texture{}}
	r.FinishShaderGroup(sg)
	if sg.Textures != nil {
		t.Errorf("rdr should drop empty dictionary")
	}

	sg = &drawable.ShaderGroup{Shaders: []*drawable.Shader{{}}}
	g.FinishShaderGroup(sg)
	if sg.Textures == nil || sg.Unknown30 != 8 {
		t.Errorf("gta group = %+v", sg)
	}
}

func TestFindShaderKey(t *testing.T) {
	lib, err := shaderdef.Parse([]byte(`
gta:
  - {name: default, filenames: [default.sps], render_bucket: ["0"]}
  - {name: normal, filenames: [normal.sps], render_bucket: ["0"]}
rdr:
  - {name: default, render_bucket: ["80"]}
`))
	if err != nil {
		t.Fatal(err)
	}
	mat := &scene.Material{ShaderName: "normal", ShaderFile: "default.sps"}

	gta, _ := For(config.GameGTA)
	if def := gta.FindShader(lib, mat); def == nil || def.Name != "default" {
		t.Errorf("gta should match on shader file, got %+v", def)
	}

	rdr, _ := For(config.GameRDR)
	if def := rdr.FindShader(lib, mat); def != nil {
		t.Errorf("rdr should match on shader name, got %+v", def)
	}
	mat.ShaderName = "default"
	mat.ShaderFile = "unrelated.sps"
	if def := rdr.FindShader(lib, mat); def == nil || def.Name != "default" {
		t.Errorf("rdr lookup by name failed, got %+v", def)
	}
}
