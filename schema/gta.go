package schema

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/format/drawablebin"
	"github.com/mogaika/drawable_exporter/format/drawablexml"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/shaderdef"
	"github.com/mogaika/drawable_exporter/vertex"
)

type gta struct{}

func (gta) Game() config.Game { return config.GameGTA }

func (gta) VertexFormat() vertex.Format {
	return vertex.Format{
		Tangents:     []string{"Tangent"},
		BlendIndices: vertex.UInt8,
	}
}

func (gta) StripAttributes(b *vertex.Buffer, def *shaderdef.Shader) *vertex.Buffer {
	def = orPermissive(def)
	return b.Filter(func(a vertex.Attribute) bool {
		switch {
		case vertex.IsTexCoord(a.Name):
			return def.UsesTexCoord(a.Name)
		case vertex.IsColour(a.Name):
			return def.UsesColour(a.Name)
		case vertex.IsTangent(a.Name):
			return def.RequiredTangent()
		case a.Name == "Normal":
			return def.RequiredNormal()
		}
		return true
	})
}

func (gta) DescribeLayout(vertex.Layout) *drawable.VertexLayout { return nil }

func (gta) DecorateGeometry(*drawable.Geometry, *scene.Material, int) {}

func (gta) FindShader(lib *shaderdef.Library, mat *scene.Material) *shaderdef.Shader {
	return lib.Find(config.GameGTA, mat.ShaderFile)
}

func (gta) NewShader(mat *scene.Material, _ *shaderdef.Shader) (*drawable.Shader, error) {
	return &drawable.Shader{
		Name:         mat.ShaderName,
		FileName:     mat.ShaderFile,
		RenderBucket: mat.RenderBucket,
	}, nil
}

func (gta) TextureParameter(node *scene.ImageNode) *drawable.TextureParameter {
	return &drawable.TextureParameter{
		Name:        node.Name,
		TextureName: node.TextureName,
	}
}

func (gta) Texture(node *scene.ImageNode) *drawable.Texture {
	return &drawable.Texture{
		Name:       node.TextureName,
		FileName:   node.TextureName + ".dds",
		Width:      node.Width,
		Height:     node.Height,
		Usage:      node.Usage,
		UsageFlags: node.UsageFlags,
		ExtraFlags: node.ExtraFlags,
		Format:     node.Format,
	}
}

// ShaderGroupUnknown30 follows the pattern seen in game files: it grows by 3
// for odd shader counts and by 4 for even ones, starting at 8.
func ShaderGroupUnknown30(shaders int) int {
	if shaders%2 == 0 {
		return shaders*7/2 + 4
	}
	return (shaders+1)*7/2 + 1
}

func (gta) FinishShaderGroup(g *drawable.ShaderGroup) {
	g.Unknown30 = ShaderGroupUnknown30(len(g.Shaders))
	if g.Textures == nil {
		g.Textures = []*drawable.Texture{}
	}
}

func (gta) TransformUnk(mgl32.Quat) mgl32.Vec4 {
	return mgl32.Vec4{0, 4, -3, 0}
}

func (gta) HasLastSiblingIndex() bool { return false }

func (gta) FinishSkeleton(*drawable.Skeleton, *scene.Armature) {}

func (gta) HasJoints() bool { return true }

func (gta) FinishModel(m *drawable.Model, _ []uint16) {
	m.BoneMapping = nil
}

func (gta) HasLights() bool { return true }

func (gta) WriteXML(w io.Writer, d *drawable.Drawable) error {
	return drawablexml.WriteGTA(w, d)
}

func (gta) WriteBinary(w io.Writer, d *drawable.Drawable, enc string) error {
	return drawablebin.Write(w, d, drawablebin.Options{Game: config.GameGTA, Encoding: enc})
}
