package drawablexml

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/mogaika/drawable_exporter/collision"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/utils"
)

type flavor int

const (
	flavorGTA flavor = iota
	flavorRDR
)

func (f flavor) rootName() string {
	if f == flavorRDR {
		return "RDR2Drawable"
	}
	return "Drawable"
}

func (f flavor) layoutType() string {
	if f == flavorRDR {
		return "RDR2"
	}
	return "GTAV1"
}

type builder struct {
	flavor flavor
}

func (b *builder) gta() bool { return b.flavor == flavorGTA }
func (b *builder) rdr() bool { return b.flavor == flavorRDR }

func (b *builder) drawable(d *drawable.Drawable) *xmlDrawable {
	x := &xmlDrawable{
		XMLName:              xml.Name{Local: b.flavor.rootName()},
		Name:                 d.Name,
		BoundingSphereCenter: vec3(d.BoundingSphereCenter),
		BoundingSphereRadius: floatValue(d.BoundingSphereRadius),
		BoundingBoxMin:       vec3(d.BoundingBoxMin),
		BoundingBoxMax:       vec3(d.BoundingBoxMax),
		LodDistHigh:          floatValue(d.LodDistances[drawable.LodHigh]),
		LodDistMed:           floatValue(d.LodDistances[drawable.LodMedium]),
		LodDistLow:           floatValue(d.LodDistances[drawable.LodLow]),
		LodDistVlow:          floatValue(d.LodDistances[drawable.LodVeryLow]),
		FlagsHigh:            uintValue(d.Flags[drawable.LodHigh]),
		FlagsMed:             uintValue(d.Flags[drawable.LodMedium]),
		FlagsLow:             uintValue(d.Flags[drawable.LodLow]),
		FlagsVlow:            uintValue(d.Flags[drawable.LodVeryLow]),
	}
	if d.ShaderGroup != nil {
		x.ShaderGroup = b.shaderGroup(d.ShaderGroup)
	}
	if d.Skeleton != nil {
		x.Skeleton = b.skeleton(d.Skeleton)
	}
	if d.Joints != nil && b.gta() {
		x.Joints = b.joints(d.Joints)
	}

	x.DrawableModelsHigh = b.models(d.Models[drawable.LodHigh])
	x.DrawableModelsMedium = b.models(d.Models[drawable.LodMedium])
	x.DrawableModelsLow = b.models(d.Models[drawable.LodLow])
	x.DrawableModelsVeryLow = b.models(d.Models[drawable.LodVeryLow])

	if b.gta() && len(d.Lights) != 0 {
		x.Lights = &xmlLights{}
		for _, l := range d.Lights {
			x.Lights.Items = append(x.Lights.Items, b.light(l))
		}
	}
	if len(d.Bounds) != 0 {
		x.Bounds = b.bounds(d.Bounds, false)
	}
	return x
}

func (b *builder) shaderGroup(sg *drawable.ShaderGroup) *xmlShaderGroup {
	x := &xmlShaderGroup{}
	if b.gta() {
		x.Unknown30 = intValue(sg.Unknown30)
	}
	if sg.Textures != nil {
		x.TextureDictionary = &xmlTextures{}
		for _, t := range sg.Textures {
			x.TextureDictionary.Items = append(x.TextureDictionary.Items, b.texture(t))
		}
	}
	for _, s := range sg.Shaders {
		x.Shaders.Items = append(x.Shaders.Items, b.shader(s))
	}
	return x
}

func (b *builder) texture(t *drawable.Texture) *xmlTexture {
	if b.rdr() {
		return &xmlTexture{Name: t.Name, Flags: intValue(t.Flags)}
	}
	return &xmlTexture{
		Name:       t.Name,
		FileName:   t.FileName,
		Usage:      t.Usage,
		UsageFlags: strings.Join(t.UsageFlags, ", "),
		ExtraFlags: intValue(t.ExtraFlags),
		Width:      intValue(t.Width),
		Height:     intValue(t.Height),
		MipLevels:  intValue(t.MipLevels),
		Format:     t.Format,
	}
}

func (b *builder) shader(s *drawable.Shader) *xmlShader {
	x := &xmlShader{Name: s.Name}
	if b.gta() {
		x.FileName = s.FileName
		x.RenderBucket = intValue(s.RenderBucket)
	} else {
		x.DrawBucket = intValue(s.DrawBucket)
		x.DrawBucketFlag = boolValue(s.DrawBucketFlag)
		x.Parameters.BufferSize = s.BufferSizes
	}
	for _, p := range s.Parameters {
		x.Parameters.Items = append(x.Parameters.Items, b.parameter(p))
	}
	return x
}

// valueTypes names cbuffer values by component count.
var valueTypes = [...]string{"", "float", "float2", "float3", "float4"}

func (b *builder) parameter(p drawable.Parameter) *xmlParameter {
	x := &xmlParameter{Name: p.ParameterName()}
	switch p := p.(type) {
	case *drawable.TextureParameter:
		x.Type = "Texture"
		x.TextureName = p.TextureName
		if b.rdr() {
			x.Index = strconv.Itoa(p.Index)
			if p.TextureName != "" {
				x.Flags = intValue(p.Flags)
			}
		}
	case *drawable.VectorParameter:
		x.Type = "Vector"
		v := vec4(p.Value)
		x.X, x.Y, x.Z, x.W = v.X, v.Y, v.Z, v.W
	case *drawable.ArrayParameter:
		x.Type = "Array"
		for _, v := range p.Values {
			x.Values = append(x.Values, vec4(v))
		}
		if x.Values == nil {
			x.Values = []*xmlVec4{}
		}
	case *drawable.CBufferParameter:
		x.Type = "CBuffer"
		x.Buffer = strconv.Itoa(p.Buffer)
		x.Offset = strconv.Itoa(p.Offset)
		x.Length = strconv.Itoa(p.Length)
		n := utils.Clamp(p.Components, 1, 4)
		x.ValueType = valueTypes[n]
		comps := []*string{&x.X, &x.Y, &x.Z, &x.W}
		for i := 0; i < n; i++ {
			*comps[i] = formatFloat(p.Value[i])
		}
	case *drawable.SamplerParameter:
		x.Type = "Sampler"
		x.Index = strconv.Itoa(p.Index)
		x.Sampler = formatFloat(p.Sampler)
	case *drawable.UnknownParameter:
		x.Type = "Unknown"
		x.Index = strconv.Itoa(p.Index)
	}
	return x
}

func (b *builder) skeleton(s *drawable.Skeleton) *xmlSkeleton {
	x := &xmlSkeleton{
		Unknown50: uintValue(s.Unknown50),
		Unknown54: uintValue(s.Unknown54),
		Unknown58: uintValue(s.Unknown58),
	}
	if b.rdr() {
		x.Unknown24 = intValue(s.Unknown24)
		x.Unknown60 = intValue(s.Unknown60)
		x.ParentBoneTag = intValue(s.ParentBoneTag)
	}
	for _, bone := range s.Bones {
		xb := &xmlBone{
			Name:         bone.Name,
			Tag:          intValue(int(bone.Tag)),
			Index:        intValue(bone.Index),
			ParentIndex:  intValue(bone.ParentIndex),
			SiblingIndex: intValue(bone.SiblingIndex),
			Flags:        strings.Join(bone.Flags, ", "),
			Translation:  vec3(bone.Translation),
			Rotation:     quat(bone.Rotation),
			Scale:        vec3(bone.Scale),
			TransformUnk: vec4(bone.TransformUnk),
		}
		if b.rdr() {
			xb.LastSiblingIndex = intValue(bone.LastSiblingIndex)
		}
		x.Bones.Items = append(x.Bones.Items, xb)
	}
	return x
}

func (b *builder) joints(j *drawable.Joints) *xmlJoints {
	x := &xmlJoints{}
	for _, l := range j.RotationLimits {
		x.RotationLimits.Items = append(x.RotationLimits.Items, limit(l))
	}
	for _, l := range j.TranslationLimits {
		x.TranslationLimits.Items = append(x.TranslationLimits.Items, limit(l))
	}
	return x
}

func limit(l *drawable.BoneLimit) *xmlLimit {
	return &xmlLimit{
		BoneId: intValue(int(l.BoneID)),
		Min:    vec3(l.Min),
		Max:    vec3(l.Max),
	}
}

func (b *builder) models(models []*drawable.Model) *xmlModels {
	if len(models) == 0 {
		return nil
	}
	x := &xmlModels{}
	for _, m := range models {
		x.Items = append(x.Items, b.model(m))
	}
	return x
}

func (b *builder) model(m *drawable.Model) *xmlModel {
	x := &xmlModel{
		RenderMask: intValue(int(m.RenderMask)),
		Flags:      intValue(int(m.Flags)),
		HasSkin:    intValue(boolToInt(m.HasSkin)),
		BoneIndex:  intValue(m.BoneIndex),
	}
	if b.gta() {
		x.Unknown1 = intValue(m.MatrixCount)
	} else {
		tags := make([]int, len(m.BoneMapping))
		for i, t := range m.BoneMapping {
			tags[i] = int(t)
		}
		x.BoneMapping = joinInts(tags, ", ")
		x.BoundingBoxMin = vec3(m.BoundingBoxMin)
		x.BoundingBoxMax = vec3(m.BoundingBoxMax)
	}
	for _, g := range m.Geometries {
		x.Geometries.Items = append(x.Geometries.Items, b.geometry(g))
	}
	return x
}

func (b *builder) geometry(g *drawable.Geometry) *xmlGeometry {
	x := &xmlGeometry{
		ShaderIndex:    intValue(g.ShaderIndex),
		BoundingBoxMin: vec3(g.BoundingBoxMin),
		BoundingBoxMax: vec3(g.BoundingBoxMax),
		BoneIDs:        joinInts(g.BoneIDs, ", "),
		VertexBuffer: xmlVertexBuffer{
			Flags: intValue(0),
			Data:  xmlData{vertexData(g.Vertices)},
		},
		IndexBuffer: xmlIndexBuffer{Data: xmlData{indexData(g.Indices)}},
	}
	x.VertexBuffer.Layout.Type = b.flavor.layoutType()
	if g.Vertices != nil {
		for _, a := range g.Vertices.Layout {
			x.VertexBuffer.Layout.Attributes = append(x.VertexBuffer.Layout.Attributes,
				&xmlLayoutElement{XMLName: xml.Name{Local: a.Name}})
		}
	}
	if b.rdr() {
		x.ColourSemantic = intValue(g.ColourSemantic)
		x.BoneCount = intValue(g.BoneCount)
		if g.VertexLayout != nil {
			x.VertexLayout = &xmlVertexLayout{
				Semantics:      g.VertexLayout.Semantics,
				Formats:        g.VertexLayout.Formats,
				NonInterleaved: boolValue(g.VertexLayout.NonInterleaved),
			}
		}
	}
	return x
}

func (b *builder) light(l *drawable.Light) *xmlLight {
	return &xmlLight{
		Position:        vec3(l.Position),
		Colour:          &xmlColour{l.Colour[0], l.Colour[1], l.Colour[2]},
		Flashiness:      intValue(l.Flashiness),
		Intensity:       floatValue(l.Intensity),
		Flags:           uintValue(l.Flags),
		BoneId:          intValue(int(l.BoneID)),
		Type:            l.Kind,
		TimeFlags:       uintValue(l.TimeFlags),
		Falloff:         floatValue(l.Falloff),
		FalloffExponent: floatValue(l.FalloffExponent),
		Direction:       vec3(l.Direction),
		Tangent:         vec3(l.Tangent),
		ConeInnerAngle:  floatValue(l.ConeInnerAngle),
		ConeOuterAngle:  floatValue(l.ConeOuterAngle),
		Extent:          vec3(l.Extent),
	}
}

var boundTypes = map[string]string{
	"box":       "Box",
	"sphere":    "Sphere",
	"capsule":   "Capsule",
	"cylinder":  "Cylinder",
	"composite": "Composite",
}

// bounds writes collision records. Composite transforms are only written for
// children, a top level bound has none in game.
func (b *builder) bounds(bounds []*collision.Bound, children bool) *xmlBounds {
	x := &xmlBounds{}
	for _, cb := range bounds {
		m := cb.Material
		xb := &xmlBound{
			Type:           boundTypes[string(cb.Kind)],
			Name:           cb.Name,
			BoxMin:         vec3(cb.BoxMin),
			BoxMax:         vec3(cb.BoxMax),
			BoxCenter:      vec3(cb.BoxCenter),
			SphereCenter:   vec3(cb.SphereCenter),
			SphereRadius:   floatValue(cb.SphereRadius),
			Margin:         floatValue(cb.Margin),
			Volume:         floatValue(cb.Volume),
			Mass:           floatValue(cb.Mass),
			Inertia:        vec3(cb.Inertia),
			MaterialIndex:  intValue(m.Index),
			MaterialColour: &xmlColour{m.Color[0], m.Color[1], m.Color[2]},
		}
		if children {
			t, r, s := utils.DecomposeMat4(cb.CompositeTransform)
			xb.CompositePosition = vec3(t)
			xb.CompositeRotation = quat(r)
			xb.CompositeScale = vec3(s)
		}
		if len(cb.Children) != 0 {
			xb.Children = b.bounds(cb.Children, true)
		}
		x.Items = append(x.Items, xb)
	}
	return x
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
