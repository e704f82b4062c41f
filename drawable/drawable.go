package drawable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/collision"
)

type LodLevel int

const (
	LodHigh LodLevel = iota
	LodMedium
	LodLow
	LodVeryLow
	LodCount
)

func (l LodLevel) String() string {
	switch l {
	case LodHigh:
		return "High"
	case LodMedium:
		return "Med"
	case LodLow:
		return "Low"
	case LodVeryLow:
		return "VLow"
	}
	return "Unknown"
}

// Drawable is the assembled asset. Sub records are attached once and not
// edited afterwards.
type Drawable struct {
	Name string

	BoundingSphereCenter mgl32.Vec3
	BoundingSphereRadius float32
	BoundingBoxMin       mgl32.Vec3
	BoundingBoxMax       mgl32.Vec3

	LodDistances [LodCount]float32
	// Model count per lod.
	Flags [LodCount]uint32

	ShaderGroup *ShaderGroup
	Skeleton    *Skeleton
	Joints      *Joints
	Models      [LodCount][]*Model
	Lights      []*Light
	Bounds      []*collision.Bound
}

// ModelsCount is the number of models over every lod.
func (d *Drawable) ModelsCount() int {
	n := 0
	for _, models := range d.Models {
		n += len(models)
	}
	return n
}

type Model struct {
	RenderMask  uint8
	Flags       uint8
	HasSkin     bool
	BoneIndex   int
	MatrixCount int

	// Bone tags used by the skin, rdr only. Nil when unskinned.
	BoneMapping    []uint16
	BoundingBoxMin mgl32.Vec3
	BoundingBoxMax mgl32.Vec3

	Geometries []*Geometry
}

type Light struct {
	Kind      string
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Tangent   mgl32.Vec3
	Colour    [3]uint8
	Intensity float32

	Falloff         float32
	FalloffExponent float32
	ConeInnerAngle  float32
	ConeOuterAngle  float32
	Extent          mgl32.Vec3

	BoneID     uint16
	Flags      uint32
	TimeFlags  uint32
	Flashiness int
}
