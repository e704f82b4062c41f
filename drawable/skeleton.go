package drawable

import "github.com/go-gl/mathgl/mgl32"

type Skeleton struct {
	Bones []*Bone

	// Compatibility hashes over the bone list.
	Unknown50 uint32
	Unknown54 uint32
	Unknown58 uint32

	// rdr header values
	Unknown24     int
	Unknown60     int
	ParentBoneTag int
}

type Bone struct {
	Name  string
	Tag   uint16
	Index int

	ParentIndex      int
	SiblingIndex     int
	LastSiblingIndex int

	Flags []string

	Translation  mgl32.Vec3
	Rotation     mgl32.Quat
	Scale        mgl32.Vec3
	TransformUnk mgl32.Vec4
}

type Joints struct {
	RotationLimits    []*BoneLimit
	TranslationLimits []*BoneLimit
}

type BoneLimit struct {
	BoneID uint16
	Min    mgl32.Vec3
	Max    mgl32.Vec3
}
