package scene

import (
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a yaml scene description, as written by the host editor's dump
// hook, and resolves defaults the yaml form leaves implicit.
func Load(r io.Reader) (*DrawableObject, error) {
	obj := &DrawableObject{}
	if err := yaml.NewDecoder(r).Decode(obj); err != nil {
		return nil, errors.Wrap(err, "decoding scene")
	}
	if obj.Armature != nil {
		obj.Armature.fillDefaults()
		if err := obj.Armature.Validate(); err != nil {
			return nil, err
		}
	}
	for _, mo := range obj.Models {
		for _, lod := range mo.Lods {
			if lod.Mesh == nil {
				continue
			}
			if err := lod.Mesh.Validate(); err != nil {
				return nil, errors.Wrapf(err, "model %s", mo.Name)
			}
		}
	}
	return obj, nil
}

func LoadFile(path string) (*DrawableObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	obj, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return obj, nil
}

func (a *Armature) fillDefaults() {
	if a.World == (mgl32.Mat4{}) {
		a.World = mgl32.Ident4()
	}
	for i := range a.Bones {
		if a.Bones[i].MatrixLocal == (mgl32.Mat4{}) {
			a.Bones[i].MatrixLocal = mgl32.Ident4()
		}
	}
}

// Validate rejects parent links outside the bone list and parent cycles.
func (a *Armature) Validate() error {
	for i := range a.Bones {
		b := &a.Bones[i]
		if b.Parent < -1 || b.Parent >= len(a.Bones) || b.Parent == i {
			return errors.Errorf("bone %q has invalid parent %d", b.Name, b.Parent)
		}
	}
	// a chain longer than the bone count has to loop
	for i := range a.Bones {
		p := a.Bones[i].Parent
		for steps := 0; p >= 0; steps++ {
			if steps >= len(a.Bones) {
				return errors.Errorf("bone %q is part of a parent cycle", a.Bones[i].Name)
			}
			p = a.Bones[p].Parent
		}
	}
	return nil
}
