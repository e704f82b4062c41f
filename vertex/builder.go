package vertex

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/utils"
)

// Format is the per game part of the record layout.
type Format struct {
	// One tangent attribute per uv channel, up to len(Tangents).
	Tangents     []string
	BlendIndices ComponentType
}

const maxBoneInfluences = 4

// Builder turns a scene mesh into per loop vertex records.
type Builder struct {
	mesh        *scene.Mesh
	boneByGroup map[int]int
}

// NewBuilder prepares a builder for mesh. boneByGroup maps vertex group index
// to bone index; nil means the mesh is not skinned.
func NewBuilder(mesh *scene.Mesh, boneByGroup map[int]int) *Builder {
	return &Builder{
		mesh:        mesh,
		boneByGroup: boneByGroup,
	}
}

func clampCount(have, max int) int {
	if have < 1 {
		return 1
	}
	if have > max {
		return max
	}
	return have
}

func (vb *Builder) layout(f Format) Layout {
	m := vb.mesh
	attrs := []Attribute{
		{Name: "Position", Type: Float32, Components: 3},
		{Name: "Normal", Type: Float32, Components: 3},
	}
	if vb.boneByGroup != nil {
		attrs = append(attrs,
			Attribute{Name: "BlendWeights", Type: UNorm8, Components: 4},
			Attribute{Name: "BlendIndices", Type: f.BlendIndices, Components: 4})
	}
	for i := 0; i < clampCount(len(m.Colors), MaxColours); i++ {
		attrs = append(attrs, Attribute{Name: ColourName(i), Type: UNorm8, Components: 4})
	}
	for i := 0; i < clampCount(len(m.UVs), MaxTexCoords); i++ {
		attrs = append(attrs, Attribute{Name: TexCoordName(i), Type: Float32, Components: 2})
	}
	for i := 0; i < clampCount(len(m.UVs), len(f.Tangents)); i++ {
		attrs = append(attrs, Attribute{Name: f.Tangents[i], Type: Float32, Components: 4})
	}
	return MustLayout(attrs...)
}

// Build returns one record per mesh loop, or nil when the mesh has no loops or
// no material slots.
func (vb *Builder) Build(f Format) *Buffer {
	m := vb.mesh
	if len(m.Loops) == 0 || len(m.Materials) == 0 {
		return nil
	}

	layout := vb.layout(f)
	buf := NewBuffer(layout, len(m.Loops))

	var skins []vertexSkin
	if vb.boneByGroup != nil {
		skins = vb.skins()
	}
	tangents := make([][]mgl32.Vec4, len(f.Tangents))
	for i, name := range f.Tangents {
		if layout.Has(name) {
			tangents[i] = vb.tangents(i)
		}
	}

	colours := clampCount(len(m.Colors), MaxColours)
	uvs := clampCount(len(m.UVs), MaxTexCoords)

	for i, v := range m.Loops {
		p := m.Positions[v]
		buf.SetFloats(i, "Position", p[0], p[1], p[2])

		if i < len(m.Normals) {
			n := m.Normals[i]
			buf.SetFloats(i, "Normal", n[0], n[1], n[2])
		}

		if skins != nil {
			s := skins[v]
			buf.SetBytes(i, "BlendWeights", s.weights[:]...)
			buf.SetUints(i, "BlendIndices", s.bones[:]...)
		}

		for c := 0; c < colours; c++ {
			col := [4]uint8{255, 255, 255, 255}
			if c < len(m.Colors) && i < len(m.Colors[c]) {
				src := m.Colors[c][i]
				for k := range col {
					col[k] = utils.UnitToByte(src[k])
				}
			}
			buf.SetBytes(i, ColourName(c), col[:]...)
		}

		for c := 0; c < uvs; c++ {
			if c < len(m.UVs) && i < len(m.UVs[c]) {
				uv := m.UVs[c][i]
				buf.SetFloats(i, TexCoordName(c), uv[0], 1-uv[1])
			}
		}

		for c, name := range f.Tangents {
			if tangents[c] != nil {
				t := tangents[c][i]
				buf.SetFloats(i, name, t[0], t[1], t[2], t[3])
			}
		}
	}

	return buf
}

type vertexSkin struct {
	weights [maxBoneInfluences]uint8
	bones   [maxBoneInfluences]uint32
}

type influence struct {
	bone   int
	weight float32
}

func (vb *Builder) skins() []vertexSkin {
	m := vb.mesh
	skins := make([]vertexSkin, len(m.Positions))
	for v := range skins {
		if v >= len(m.Weights) {
			continue
		}
		infl := make([]influence, 0, len(m.Weights[v]))
		for _, gw := range m.Weights[v] {
			bone, ok := vb.boneByGroup[gw.Group]
			if !ok || gw.Weight <= 0 {
				continue
			}
			infl = append(infl, influence{bone, gw.Weight})
		}
		skins[v] = packInfluences(infl)
	}
	return skins
}

// packInfluences keeps the strongest four influences and quantizes them so the
// weight bytes sum to 255.
func packInfluences(infl []influence) (s vertexSkin) {
	sort.SliceStable(infl, func(i, j int) bool {
		if infl[i].weight != infl[j].weight {
			return infl[i].weight > infl[j].weight
		}
		return infl[i].bone < infl[j].bone
	})
	if len(infl) > maxBoneInfluences {
		infl = infl[:maxBoneInfluences]
	}

	var total float32
	for _, in := range infl {
		total += in.weight
	}
	if total <= 0 {
		return s
	}

	sum := 0
	for i, in := range infl {
		s.weights[i] = utils.UnitToByte(in.weight / total)
		s.bones[i] = uint32(in.bone)
		sum += int(s.weights[i])
	}
	s.weights[0] = uint8(utils.Clamp(int(s.weights[0])+255-sum, 0, 255))
	return s
}

// tangents returns per loop tangents for uv channel ch. Host supplied
// tangents win; otherwise a per triangle tangent is orthogonalized against
// each corner normal, handedness in W.
func (vb *Builder) tangents(ch int) []mgl32.Vec4 {
	m := vb.mesh
	if ch < len(m.Tangents) && len(m.Tangents[ch]) == len(m.Loops) {
		return m.Tangents[ch]
	}

	out := make([]mgl32.Vec4, len(m.Loops))
	if ch >= len(m.UVs) || len(m.UVs[ch]) < len(m.Loops) {
		return out
	}
	uvs := m.UVs[ch]

	for _, tri := range m.Triangles {
		l0, l1, l2 := tri.Loops[0], tri.Loops[1], tri.Loops[2]
		p0 := m.Positions[m.Loops[l0]]
		e1 := m.Positions[m.Loops[l1]].Sub(p0)
		e2 := m.Positions[m.Loops[l2]].Sub(p0)
		d1 := uvs[l1].Sub(uvs[l0])
		d2 := uvs[l2].Sub(uvs[l0])

		t := mgl32.Vec3{1, 0, 0}
		b := mgl32.Vec3{0, 1, 0}
		if r := d1[0]*d2[1] - d2[0]*d1[1]; math.Abs(float64(r)) > 1e-12 {
			inv := 1 / r
			t = e1.Mul(d2[1]).Sub(e2.Mul(d1[1])).Mul(inv)
			b = e2.Mul(d1[0]).Sub(e1.Mul(d2[0])).Mul(inv)
		}
		face := e1.Cross(e2)

		for _, l := range tri.Loops {
			n := face
			if int(l) < len(m.Normals) && m.Normals[l].Len() > 0 {
				n = m.Normals[l]
			}
			if n.Len() > 0 {
				n = n.Normalize()
			}
			ortho := t.Sub(n.Mul(n.Dot(t)))
			if ortho.Len() < 1e-8 {
				ortho = n.Cross(mgl32.Vec3{0, 0, 1})
				if ortho.Len() < 1e-8 {
					ortho = n.Cross(mgl32.Vec3{0, 1, 0})
				}
			}
			if ortho.Len() > 0 {
				ortho = ortho.Normalize()
			}
			w := float32(1)
			if n.Cross(ortho).Dot(b) < 0 {
				w = -1
			}
			out[l] = ortho.Vec4(w)
		}
	}
	return out
}
