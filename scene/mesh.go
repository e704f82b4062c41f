package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Mesh is an evaluated, triangulated mesh surface. Per corner data is indexed
// by loop, per vertex data by the value stored in Loops.
type Mesh struct {
	Name      string       `yaml:"name"`
	Positions []mgl32.Vec3 `yaml:"positions"`
	Loops     []uint32     `yaml:"loops"`
	Triangles []Triangle   `yaml:"triangles"`

	Normals  []mgl32.Vec3   `yaml:"normals"`
	UVs      [][]mgl32.Vec2 `yaml:"uvs"`
	Colors   [][]mgl32.Vec4 `yaml:"colors"`
	Tangents [][]mgl32.Vec4 `yaml:"tangents"` // optional, one set per uv channel

	VertexGroups []string        `yaml:"vertex_groups"`
	Weights      [][]GroupWeight `yaml:"weights"` // per vertex

	// Material slot names, resolved against the drawable material list.
	Materials []string `yaml:"materials"`
}

type Triangle struct {
	Loops    [3]uint32 `yaml:"loops"`
	Material int       `yaml:"material"`
}

type GroupWeight struct {
	Group  int     `yaml:"group"`
	Weight float32 `yaml:"weight"`
}

func (m *Mesh) LoopsCount() int {
	return len(m.Loops)
}

// Validate checks that every index stays inside the arrays it points into
// and that per corner arrays cover every loop.
func (m *Mesh) Validate() error {
	for i, v := range m.Loops {
		if int(v) >= len(m.Positions) {
			return errors.Errorf("mesh %q loop %d references position %d of %d", m.Name, i, v, len(m.Positions))
		}
	}
	for i, tri := range m.Triangles {
		for _, l := range tri.Loops {
			if int(l) >= len(m.Loops) {
				return errors.Errorf("mesh %q triangle %d references loop %d of %d", m.Name, i, l, len(m.Loops))
			}
		}
	}
	if err := m.checkPerLoop("normal", 0, len(m.Normals)); err != nil {
		return err
	}
	for c, set := range m.UVs {
		if err := m.checkPerLoop("uv", c, len(set)); err != nil {
			return err
		}
	}
	for c, set := range m.Colors {
		if err := m.checkPerLoop("color", c, len(set)); err != nil {
			return err
		}
	}
	for c, set := range m.Tangents {
		if err := m.checkPerLoop("tangent", c, len(set)); err != nil {
			return err
		}
	}
	return nil
}

// checkPerLoop accepts an absent channel or one covering every loop.
func (m *Mesh) checkPerLoop(kind string, channel, have int) error {
	if have != 0 && have < len(m.Loops) {
		return errors.Errorf("mesh %q %s channel %d has %d values for %d loops", m.Name, kind, channel, have, len(m.Loops))
	}
	return nil
}

// Transformed returns a copy of the mesh with mat applied. Positions,
// normals and tangents are copied, everything else is shared.
func (m *Mesh) Transformed(mat mgl32.Mat4) *Mesh {
	out := *m
	out.Positions = append([]mgl32.Vec3(nil), m.Positions...)
	out.Normals = append([]mgl32.Vec3(nil), m.Normals...)
	out.Tangents = make([][]mgl32.Vec4, len(m.Tangents))
	for i, set := range m.Tangents {
		out.Tangents[i] = append([]mgl32.Vec4(nil), set...)
	}
	out.Transform(mat)
	return &out
}

// Transform applies m to positions and the inverse transpose to normals.
func (m *Mesh) Transform(mat mgl32.Mat4) {
	for i, p := range m.Positions {
		m.Positions[i] = mat.Mul4x1(p.Vec4(1)).Vec3()
	}
	normalMat := mat.Mat3().Inv().Transpose()
	for i, n := range m.Normals {
		if t := normalMat.Mul3x1(n); t.Len() > 0 {
			m.Normals[i] = t.Normalize()
		}
	}
	for _, set := range m.Tangents {
		for i, t := range set {
			v := mat.Mat3().Mul3x1(t.Vec3())
			if v.Len() > 0 {
				v = v.Normalize()
			}
			set[i] = v.Vec4(t.W())
		}
	}
}
