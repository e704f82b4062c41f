// Package schema holds the per game differences of the drawable format.
// Every export stage asks its Schema instead of branching on the game.
package schema

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/shaderdef"
	"github.com/mogaika/drawable_exporter/vertex"
)

type Schema interface {
	Game() config.Game

	// Vertex records
	VertexFormat() vertex.Format
	StripAttributes(b *vertex.Buffer, def *shaderdef.Shader) *vertex.Buffer
	DescribeLayout(layout vertex.Layout) *drawable.VertexLayout
	DecorateGeometry(g *drawable.Geometry, mat *scene.Material, boneCount int)

	// Shaders
	FindShader(lib *shaderdef.Library, mat *scene.Material) *shaderdef.Shader
	NewShader(mat *scene.Material, def *shaderdef.Shader) (*drawable.Shader, error)
	TextureParameter(node *scene.ImageNode) *drawable.TextureParameter
	Texture(node *scene.ImageNode) *drawable.Texture
	FinishShaderGroup(g *drawable.ShaderGroup)

	// Skeleton
	TransformUnk(rotation mgl32.Quat) mgl32.Vec4
	HasLastSiblingIndex() bool
	FinishSkeleton(s *drawable.Skeleton, arm *scene.Armature)
	HasJoints() bool

	// Models
	FinishModel(m *drawable.Model, boneTags []uint16)
	HasLights() bool

	// Output
	WriteXML(w io.Writer, d *drawable.Drawable) error
	WriteBinary(w io.Writer, d *drawable.Drawable, enc string) error
}

func For(game config.Game) (Schema, error) {
	switch game {
	case config.GameGTA:
		return gta{}, nil
	case config.GameRDR:
		return rdr{}, nil
	}
	return nil, errors.Errorf("no drawable schema for game %v", game)
}

// permissiveShader stands in for a missing shader definition. It asks for
// nothing but the first uv channel.
var permissiveShader = &shaderdef.Shader{
	TexCoords: []string{"TexCoord0"},
}

func orPermissive(def *shaderdef.Shader) *shaderdef.Shader {
	if def == nil {
		return permissiveShader
	}
	return def
}
