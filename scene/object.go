package scene

import "github.com/go-gl/mathgl/mgl32"

type LodLevel int

const (
	LodVeryHigh LodLevel = iota
	LodHigh
	LodMedium
	LodLow
	LodVeryLow
)

var lodNames = map[string]LodLevel{
	"very_high": LodVeryHigh,
	"high":      LodHigh,
	"medium":    LodMedium,
	"low":       LodLow,
	"very_low":  LodVeryLow,
}

func (l LodLevel) String() string {
	for name, lvl := range lodNames {
		if lvl == l {
			return name
		}
	}
	return "unknown"
}

// DrawableObject is the root handed to the exporter.
type DrawableObject struct {
	Name string `yaml:"name"`
	// Armature is set when the drawable is skinned or has bones to attach
	// models to.
	Armature  *Armature      `yaml:"armature"`
	Materials []*Material    `yaml:"materials"`
	Models    []*ModelObject `yaml:"models"`
	Bounds    []*BoundObject `yaml:"bounds"`
	Lights    []*Light       `yaml:"lights"`

	LodDistHigh    float32 `yaml:"lod_dist_high"`
	LodDistMedium  float32 `yaml:"lod_dist_medium"`
	LodDistLow     float32 `yaml:"lod_dist_low"`
	LodDistVeryLow float32 `yaml:"lod_dist_very_low"`
}

type ModelObject struct {
	Name string `yaml:"name"`
	Lods []*Lod `yaml:"lods"`
	// Vertex group names shared by every lod mesh of the model.
	VertexGroups []string `yaml:"vertex_groups"`
	// Bone the model is parented to, empty when unattached.
	ParentBone string `yaml:"parent_bone"`
	// Applied to every lod mesh before geometry is built.
	Transform *mgl32.Mat4 `yaml:"transform"`
}

type Lod struct {
	Level      LodLevel `yaml:"level"`
	Mesh       *Mesh    `yaml:"mesh"`
	RenderMask int      `yaml:"render_mask"`
	Flags      int      `yaml:"flags"`
}

func (l *LodLevel) UnmarshalText(text []byte) error {
	lvl, ok := lodNames[string(text)]
	if !ok {
		return &lodLevelError{string(text)}
	}
	*l = lvl
	return nil
}

type lodLevelError struct{ name string }

func (e *lodLevelError) Error() string { return "unknown lod level " + e.name }

type BoundKind string

const (
	BoundBox       BoundKind = "box"
	BoundSphere    BoundKind = "sphere"
	BoundCapsule   BoundKind = "capsule"
	BoundCylinder  BoundKind = "cylinder"
	BoundComposite BoundKind = "composite"
)

type BoundObject struct {
	Name     string     `yaml:"name"`
	Kind     BoundKind  `yaml:"kind"`
	Material string     `yaml:"material"`
	Center   mgl32.Vec3 `yaml:"center"`
	// Full box extents.
	Size   mgl32.Vec3 `yaml:"size"`
	Radius float32    `yaml:"radius"`
	Length float32    `yaml:"length"`
	// Composite child transform, nil means identity.
	Transform *mgl32.Mat4    `yaml:"transform"`
	Children  []*BoundObject `yaml:"children"`
}

type LightKind string

const (
	LightPoint   LightKind = "point"
	LightSpot    LightKind = "spot"
	LightCapsule LightKind = "capsule"
)

type Light struct {
	Name      string     `yaml:"name"`
	Kind      LightKind  `yaml:"kind"`
	Position  mgl32.Vec3 `yaml:"position"`
	Direction mgl32.Vec3 `yaml:"direction"`
	Tangent   mgl32.Vec3 `yaml:"tangent"`
	Color     [3]uint8   `yaml:"color"`
	Intensity float32    `yaml:"intensity"`

	Falloff         float32 `yaml:"falloff"`
	FalloffExponent float32 `yaml:"falloff_exponent"`
	ConeInnerAngle  float32 `yaml:"cone_inner_angle"`
	ConeOuterAngle  float32 `yaml:"cone_outer_angle"`
	CapsuleExtent   float32 `yaml:"capsule_extent"`

	BoneName   string `yaml:"bone"`
	Flags      uint32 `yaml:"flags"`
	TimeFlags  uint32 `yaml:"time_flags"`
	Flashiness int    `yaml:"flashiness"`
}
