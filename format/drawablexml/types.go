package drawablexml

import "encoding/xml"

// Element layout of the drawable xml. Game specific elements are pointers or
// omitempty fields and stay nil for the other game.

type xmlDrawable struct {
	XMLName xml.Name

	Name                 string
	BoundingSphereCenter *xmlVec3
	BoundingSphereRadius *xmlValue
	BoundingBoxMin       *xmlVec3
	BoundingBoxMax       *xmlVec3
	LodDistHigh          *xmlValue
	LodDistMed           *xmlValue
	LodDistLow           *xmlValue
	LodDistVlow          *xmlValue
	FlagsHigh            *xmlValue
	FlagsMed             *xmlValue
	FlagsLow             *xmlValue
	FlagsVlow            *xmlValue

	ShaderGroup *xmlShaderGroup
	Skeleton    *xmlSkeleton
	Joints      *xmlJoints

	DrawableModelsHigh    *xmlModels
	DrawableModelsMedium  *xmlModels
	DrawableModelsLow     *xmlModels
	DrawableModelsVeryLow *xmlModels

	Lights *xmlLights
	Bounds *xmlBounds
}

type xmlShaderGroup struct {
	Unknown30         *xmlValue
	TextureDictionary *xmlTextures
	Shaders           xmlShaders
}

type xmlTextures struct {
	Items []*xmlTexture `xml:"Item"`
}

type xmlTexture struct {
	Name       string
	FileName   string `xml:",omitempty"`
	Usage      string `xml:",omitempty"`
	UsageFlags string `xml:",omitempty"`
	ExtraFlags *xmlValue
	Width      *xmlValue
	Height     *xmlValue
	MipLevels  *xmlValue
	Format     string `xml:",omitempty"`
	Flags      *xmlValue
}

type xmlShaders struct {
	Items []*xmlShader `xml:"Item"`
}

type xmlShader struct {
	Name           string
	FileName       string `xml:",omitempty"`
	RenderBucket   *xmlValue
	DrawBucket     *xmlValue
	DrawBucketFlag *xmlValue
	Parameters     xmlParameters
}

type xmlParameters struct {
	BufferSize string          `xml:"buffer_size,attr,omitempty"`
	Items      []*xmlParameter `xml:"Item"`
}

type xmlParameter struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	Index     string `xml:"index,attr,omitempty"`
	Buffer    string `xml:"buffer,attr,omitempty"`
	Offset    string `xml:"offset,attr,omitempty"`
	Length    string `xml:"length,attr,omitempty"`
	ValueType string `xml:"value_type,attr,omitempty"`
	Sampler   string `xml:"sampler,attr,omitempty"`
	X         string `xml:"x,attr,omitempty"`
	Y         string `xml:"y,attr,omitempty"`
	Z         string `xml:"z,attr,omitempty"`
	W         string `xml:"w,attr,omitempty"`

	TextureName string `xml:"Name,omitempty"`
	Flags       *xmlValue
	Values      []*xmlVec4 `xml:"Value"`
}

type xmlSkeleton struct {
	Unknown24     *xmlValue
	Unknown50     *xmlValue
	Unknown54     *xmlValue
	Unknown58     *xmlValue
	Unknown60     *xmlValue
	ParentBoneTag *xmlValue
	Bones         xmlBones
}

type xmlBones struct {
	Items []*xmlBone `xml:"Item"`
}

type xmlBone struct {
	Name             string
	Tag              *xmlValue
	Index            *xmlValue
	ParentIndex      *xmlValue
	SiblingIndex     *xmlValue
	LastSiblingIndex *xmlValue
	Flags            string
	Translation      *xmlVec3
	Rotation         *xmlVec4
	Scale            *xmlVec3
	TransformUnk     *xmlVec4
}

type xmlJoints struct {
	RotationLimits    xmlLimits
	TranslationLimits xmlLimits
}

type xmlLimits struct {
	Items []*xmlLimit `xml:"Item"`
}

type xmlLimit struct {
	BoneId *xmlValue
	Min    *xmlVec3
	Max    *xmlVec3
}

type xmlModels struct {
	Items []*xmlModel `xml:"Item"`
}

type xmlModel struct {
	RenderMask     *xmlValue
	Flags          *xmlValue
	HasSkin        *xmlValue
	BoneIndex      *xmlValue
	Unknown1       *xmlValue
	BoneMapping    string `xml:",omitempty"`
	BoundingBoxMin *xmlVec3
	BoundingBoxMax *xmlVec3
	Geometries     xmlGeometries
}

type xmlGeometries struct {
	Items []*xmlGeometry `xml:"Item"`
}

type xmlGeometry struct {
	ShaderIndex    *xmlValue
	BoundingBoxMin *xmlVec3
	BoundingBoxMax *xmlVec3
	BoneIDs        string `xml:",omitempty"`
	ColourSemantic *xmlValue
	VertexLayout   *xmlVertexLayout
	BoneCount      *xmlValue
	VertexBuffer   xmlVertexBuffer
	IndexBuffer    xmlIndexBuffer
}

type xmlVertexLayout struct {
	Semantics      string
	Formats        string
	NonInterleaved *xmlValue
}

type xmlVertexBuffer struct {
	Flags  *xmlValue
	Layout xmlLayout
	Data   xmlData
}

type xmlLayout struct {
	Type       string              `xml:"type,attr"`
	Attributes []*xmlLayoutElement
}

// xmlLayoutElement is an empty element named after the vertex attribute.
type xmlLayoutElement struct {
	XMLName xml.Name
}

type xmlIndexBuffer struct {
	Data xmlData
}

// xmlData carries number rows verbatim; chardata would escape the line
// breaks.
type xmlData struct {
	Text string `xml:",innerxml"`
}

type xmlLights struct {
	Items []*xmlLight `xml:"Item"`
}

type xmlLight struct {
	Position        *xmlVec3
	Colour          *xmlColour
	Flashiness      *xmlValue
	Intensity       *xmlValue
	Flags           *xmlValue
	BoneId          *xmlValue
	Type            string
	TimeFlags       *xmlValue
	Falloff         *xmlValue
	FalloffExponent *xmlValue
	Direction       *xmlVec3
	Tangent         *xmlVec3
	ConeInnerAngle  *xmlValue
	ConeOuterAngle  *xmlValue
	Extent          *xmlVec3
}

type xmlBounds struct {
	Items []*xmlBound `xml:"Item"`
}

type xmlBound struct {
	Type string `xml:"type,attr"`

	Name              string
	BoxMin            *xmlVec3
	BoxMax            *xmlVec3
	BoxCenter         *xmlVec3
	SphereCenter      *xmlVec3
	SphereRadius      *xmlValue
	Margin            *xmlValue
	Volume            *xmlValue
	Mass              *xmlValue
	Inertia           *xmlVec3
	MaterialIndex     *xmlValue
	MaterialColour    *xmlColour
	CompositePosition *xmlVec3
	CompositeRotation *xmlVec4
	CompositeScale    *xmlVec3
	Children          *xmlBounds
}
