package schema

import (
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/format/drawablebin"
	"github.com/mogaika/drawable_exporter/format/drawablexml"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/shaderdef"
	"github.com/mogaika/drawable_exporter/utils"
	"github.com/mogaika/drawable_exporter/vertex"
)

type rdr struct{}

func (rdr) Game() config.Game { return config.GameRDR }

func (rdr) VertexFormat() vertex.Format {
	return vertex.Format{
		Tangents:     []string{"Tangent0", "Tangent1", "Tangent2"},
		BlendIndices: vertex.UInt16,
	}
}

// StripAttributes only touches tangents: without a required list every
// tangent goes, otherwise only the listed ones stay.
func (rdr) StripAttributes(b *vertex.Buffer, def *shaderdef.Shader) *vertex.Buffer {
	def = orPermissive(def)
	required := def.RequiredTangents()
	return b.Filter(func(a vertex.Attribute) bool {
		if !vertex.IsTangent(a.Name) {
			return true
		}
		for _, name := range required {
			if name == a.Name {
				return true
			}
		}
		return false
	})
}

var rdrSemantics = []struct {
	prefix string
	letter string
	format string
}{
	{"Position", "P", "3"},
	{"Normal", "N", "9"},
	{"Tangent", "X", "9"},
	{"BlendWeights", "W", "5"},
	{"BlendIndices", "I", "6"},
	{"Colour", "C", "5"},
	{"TexCoord", "T", "2"},
}

func (rdr) DescribeLayout(layout vertex.Layout) *drawable.VertexLayout {
	var sem, format strings.Builder
	for _, a := range layout {
		for _, s := range rdrSemantics {
			if strings.Contains(a.Name, s.prefix) {
				sem.WriteString(s.letter)
				format.WriteString(s.format)
				break
			}
		}
	}
	return &drawable.VertexLayout{
		Semantics:      sem.String(),
		Formats:        format.String(),
		NonInterleaved: true,
	}
}

func (r rdr) DecorateGeometry(g *drawable.Geometry, mat *scene.Material, boneCount int) {
	if strings.Contains(mat.ShaderFile, "terrain_uber_") || strings.Contains(mat.ShaderName, "terrain_uber_") {
		g.ColourSemantic = 1
	}
	g.BoneCount = boneCount
	g.VertexLayout = r.DescribeLayout(g.Vertices.Layout)
}

func (rdr) FindShader(lib *shaderdef.Library, mat *scene.Material) *shaderdef.Shader {
	return lib.Find(config.GameRDR, mat.ShaderName)
}

func (rdr) NewShader(mat *scene.Material, def *shaderdef.Shader) (*drawable.Shader, error) {
	s := &drawable.Shader{
		Name:       mat.ShaderName,
		DrawBucket: mat.RenderBucket,
	}
	if def == nil {
		return s, nil
	}
	flag, err := def.DrawBucketFlag()
	if err != nil {
		return nil, err
	}
	s.DrawBucketFlag = flag
	s.BufferSizes = def.BufferSizeString()
	return s, nil
}

// TextureParameter leaves the name out for the "None" placeholder and
// the flags out when zero.
func (rdr) TextureParameter(node *scene.ImageNode) *drawable.TextureParameter {
	p := &drawable.TextureParameter{
		Name:  node.Name,
		Index: node.Index,
	}
	if node.TextureName != "None" {
		p.TextureName = node.TextureName
		p.Flags = node.ExtraFlags
	}
	return p
}

func (rdr) Texture(node *scene.ImageNode) *drawable.Texture {
	return &drawable.Texture{
		Name:  node.TextureName,
		Flags: node.ExtraFlags,
	}
}

func (rdr) FinishShaderGroup(g *drawable.ShaderGroup) {
	if len(g.Textures) == 0 {
		g.Textures = nil
	}
}

func (rdr) TransformUnk(rotation mgl32.Quat) mgl32.Vec4 {
	y := 4 * rotation.W * rotation.W
	return mgl32.Vec4{0, y, 1 - y, 0}
}

func (rdr) HasLastSiblingIndex() bool { return true }

func (rdr) FinishSkeleton(s *drawable.Skeleton, arm *scene.Armature) {
	s.Unknown24 = arm.Unknown24
	s.Unknown60 = arm.Unknown60
	s.ParentBoneTag = arm.ParentBoneTag
}

func (rdr) HasJoints() bool { return false }

func (rdr) FinishModel(m *drawable.Model, boneTags []uint16) {
	m.BoneMapping = boneTags
	mins := make([]mgl32.Vec3, len(m.Geometries))
	maxs := make([]mgl32.Vec3, len(m.Geometries))
	for i, g := range m.Geometries {
		mins[i], maxs[i] = g.BoundingBoxMin, g.BoundingBoxMax
	}
	m.BoundingBoxMin, m.BoundingBoxMax = utils.BoxUnion(mins, maxs)
}

func (rdr) HasLights() bool { return false }

func (rdr) WriteXML(w io.Writer, d *drawable.Drawable) error {
	return drawablexml.WriteRDR(w, d)
}

func (rdr) WriteBinary(w io.Writer, d *drawable.Drawable, enc string) error {
	return drawablebin.Write(w, d, drawablebin.Options{Game: config.GameRDR, Encoding: enc})
}
