package export

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/shaderdef"
)

var ErrUnknownParameterType = errors.New("unknown shader parameter type")

// extraImageNode holds editor only data and is never written.
const extraImageNode = "Extra"

func createShaderGroup(ctx *Context, materials []*scene.Material) (*drawable.ShaderGroup, error) {
	g := &drawable.ShaderGroup{
		Shaders: make([]*drawable.Shader, 0, len(materials)),
	}
	for _, mat := range materials {
		s, err := createShader(ctx, mat)
		if err != nil {
			return nil, errors.Wrapf(err, "material %s", mat.Name)
		}
		g.Shaders = append(g.Shaders, s)
	}
	g.Textures = textureDictionary(ctx, materials)
	ctx.Schema.FinishShaderGroup(g)
	return g, nil
}

func createShader(ctx *Context, mat *scene.Material) (*drawable.Shader, error) {
	def := ctx.Schema.FindShader(ctx.Shaders, mat)
	if def == nil {
		ctx.Log.Warnf("Shader definition for material '%s' (%s %s) not found", mat.Name, mat.ShaderName, mat.ShaderFile)
	}

	s, err := ctx.Schema.NewShader(mat, def)
	if err != nil {
		return nil, err
	}
	if s.Parameters, err = parameterTemplate(def); err != nil {
		return nil, err
	}

	for _, node := range mat.Nodes {
		var p drawable.Parameter
		switch n := node.(type) {
		case *scene.ImageNode:
			if n.Name == extraImageNode {
				continue
			}
			p = ctx.Schema.TextureParameter(n)
		case *scene.ValueNode:
			var pdef *shaderdef.Parameter
			if def != nil {
				pdef, _ = def.Parameter(n.Name)
			}
			if pdef == nil {
				ctx.Log.Debugf("Material '%s' node '%s' has no parameter definition, appending as is", mat.Name, n.Name)
				p = undeclaredParameter(n)
			} else {
				p = valueParameter(n, pdef)
			}
		}
		if p != nil {
			s.Set(p)
		}
	}
	return s, nil
}

// parameterTemplate lists the declared parameters in declared order with
// default values. Tools reading the files expect the engine's order.
func parameterTemplate(def *shaderdef.Shader) ([]drawable.Parameter, error) {
	if def == nil {
		return []drawable.Parameter{}, nil
	}
	params := make([]drawable.Parameter, 0, len(def.Parameters))
	for _, pd := range def.Parameters {
		var p drawable.Parameter
		switch {
		case pd.Type == shaderdef.ParameterTexture:
			p = &drawable.TextureParameter{Name: pd.Name}
		case pd.IsArray():
			p = &drawable.ArrayParameter{Name: pd.Name, Values: make([]mgl32.Vec4, pd.Count)}
		case pd.Type.IsFloatVector():
			p = &drawable.VectorParameter{Name: pd.Name}
		case pd.Type == shaderdef.ParameterFloat4x4:
			p = &drawable.ArrayParameter{Name: pd.Name, Values: make([]mgl32.Vec4, 4)}
		case pd.Type == shaderdef.ParameterSampler:
			p = &drawable.SamplerParameter{Name: pd.Name, Index: pd.Index, Sampler: pd.X}
		case pd.Type == shaderdef.ParameterCBuffer:
			p = &drawable.CBufferParameter{
				Name:       pd.Name,
				Buffer:     pd.Buffer,
				Offset:     pd.Offset,
				Length:     pd.Length,
				Components: pd.ValueType.Columns(),
				Value:      mgl32.Vec4(pd.Defaults()),
			}
		case pd.Type == shaderdef.ParameterUnknown:
			p = &drawable.UnknownParameter{Name: pd.Name, Index: pd.Index}
		default:
			return nil, errors.Wrapf(ErrUnknownParameterType, "shader %s parameter %s type %v", def.Name, pd.Name, pd.Type)
		}
		params = append(params, p)
	}
	return params, nil
}

// undeclaredParameter keeps a node the definition does not list. Single row
// nodes become vectors, anything longer an array.
func undeclaredParameter(n *scene.ValueNode) drawable.Parameter {
	cols := n.Columns()
	rows := n.RowsCount()
	if rows <= 1 {
		return &drawable.VectorParameter{Name: n.Name, Value: rowVector(n, 0, cols)}
	}
	values := make([]mgl32.Vec4, rows)
	for r := range values {
		values[r] = rowVector(n, r, cols)
	}
	return &drawable.ArrayParameter{Name: n.Name, Values: values}
}

func valueParameter(n *scene.ValueNode, pd *shaderdef.Parameter) drawable.Parameter {
	cols := n.Columns()
	switch {
	case pd.Type.IsFloatVector() && !pd.IsArray():
		return &drawable.VectorParameter{Name: n.Name, Value: rowVector(n, 0, cols)}
	case pd.Type == shaderdef.ParameterCBuffer:
		if cols > 4 {
			cols = 4
		}
		return &drawable.CBufferParameter{
			Name:       n.Name,
			Buffer:     n.Buffer,
			Offset:     n.Offset,
			Length:     4 * cols,
			Components: cols,
			Value:      rowVector(n, 0, cols),
		}
	case pd.Type == shaderdef.ParameterSampler:
		return &drawable.SamplerParameter{Name: n.Name, Index: n.SamplerIndex, Sampler: n.Get(0)}
	}

	rows := n.RowsCount()
	values := make([]mgl32.Vec4, rows)
	for r := range values {
		values[r] = rowVector(n, r, cols)
	}
	return &drawable.ArrayParameter{Name: n.Name, Values: values}
}

func rowVector(n *scene.ValueNode, row, cols int) mgl32.Vec4 {
	var v mgl32.Vec4
	base := row * cols
	for c := 0; c < cols && c < 4; c++ {
		v[c] = n.Get(base + c)
	}
	return v
}

// textureDictionary lists embedded textures once each, first node wins.
func textureDictionary(ctx *Context, materials []*scene.Material) []*drawable.Texture {
	textures := make([]*drawable.Texture, 0)
	seen := make(map[string]bool)
	for _, node := range scene.EmbeddedImageNodes(materials) {
		if node.TextureName == "" || seen[node.TextureName] {
			continue
		}
		seen[node.TextureName] = true
		textures = append(textures, ctx.Schema.Texture(node))
	}
	return textures
}
