package scene

import "github.com/go-gl/mathgl/mgl32"

type Armature struct {
	Name  string     `yaml:"name"`
	World mgl32.Mat4 `yaml:"world"`
	Bones []Bone     `yaml:"bones"`

	// rdr skeleton header values, kept as authored
	Unknown24     int `yaml:"unknown_24"`
	Unknown60     int `yaml:"unknown_60"`
	ParentBoneTag int `yaml:"parent_bone_tag"`
}

type Bone struct {
	Name   string `yaml:"name"`
	Parent int    `yaml:"parent"` // index into Armature.Bones, -1 for roots
	Tag    uint16 `yaml:"tag"`
	// Rest matrix in armature space.
	MatrixLocal mgl32.Mat4 `yaml:"matrix_local"`
	Flags       []string   `yaml:"flags"`

	RotationLimit    *Limit `yaml:"rotation_limit"`
	TranslationLimit *Limit `yaml:"translation_limit"`
}

type Limit struct {
	Min mgl32.Vec3 `yaml:"min"`
	Max mgl32.Vec3 `yaml:"max"`
}

func (a *Armature) BoneIndex(name string) int {
	for i := range a.Bones {
		if a.Bones[i].Name == name {
			return i
		}
	}
	return -1
}
