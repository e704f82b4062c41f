package vertex

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/scene"
)

var posLayout = MustLayout(Attribute{Name: "Position", Type: Float32, Components: 3})

func positions(ps ...mgl32.Vec3) *Buffer {
	b := NewBuffer(posLayout, len(ps))
	for i, p := range ps {
		b.SetFloats(i, "Position", p[0], p[1], p[2])
	}
	return b
}

func TestLayoutOrder(t *testing.T) {
	l, err := NewLayout(
		Attribute{Name: "Tangent", Type: Float32, Components: 4},
		Attribute{Name: "TexCoord0", Type: Float32, Components: 2},
		Attribute{Name: "Normal", Type: Float32, Components: 3},
		Attribute{Name: "Colour0", Type: UNorm8, Components: 4},
		Attribute{Name: "Position", Type: Float32, Components: 3},
		Attribute{Name: "BlendIndices", Type: UInt8, Components: 4},
		Attribute{Name: "BlendWeights", Type: UNorm8, Components: 4},
	)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Position", "BlendWeights", "BlendIndices", "Normal", "Colour0", "TexCoord0", "Tangent"}
	if got := l.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if s := l.Stride(); s != 12+4+4+12+4+8+16 {
		t.Errorf("stride = %d", s)
	}
}

func TestDedupe(t *testing.T) {
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{1, 0, 0}
	c := mgl32.Vec3{0, 1, 0}
	d := mgl32.Vec3{0, 0, 1}
	e := mgl32.Vec3{1, 1, 0}
	buf := positions(a, b, c, a, d, e)

	uniq, idx := Dedupe(buf)
	if uniq.Len() != 5 {
		t.Fatalf("unique = %d, want 5", uniq.Len())
	}
	if want := []uint32{0, 1, 2, 0, 3, 4}; !reflect.DeepEqual(idx, want) {
		t.Errorf("indices = %v, want %v", idx, want)
	}
	for i, want := range []mgl32.Vec3{a, b, c, d, e} {
		if got := uniq.Position(i); got != want {
			t.Errorf("record %d = %v, want %v", i, got, want)
		}
	}

	again, idx2 := Dedupe(uniq)
	if again.Len() != uniq.Len() {
		t.Errorf("dedupe not idempotent: %d -> %d", uniq.Len(), again.Len())
	}
	for i, v := range idx2 {
		if v != uint32(i) {
			t.Errorf("second pass index %d = %d", i, v)
		}
	}
}

func TestSplitRespectsLimit(t *testing.T) {
	var ps []mgl32.Vec3
	for i := 0; i < 12; i++ {
		ps = append(ps, mgl32.Vec3{float32(i), 0, 0})
	}
	buf := positions(ps...)
	// strip of triangles sharing edges
	var indices []uint32
	for i := uint32(0); i+2 < 12; i++ {
		indices = append(indices, i, i+1, i+2)
	}

	chunks, err := Split(buf, indices, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	var rebuilt []mgl32.Vec3
	for _, ch := range chunks {
		if ch.Vertices.Len() > 5 {
			t.Errorf("chunk has %d vertices", ch.Vertices.Len())
		}
		for _, idx := range ch.Indices {
			if int(idx) >= ch.Vertices.Len() {
				t.Fatalf("index %d out of chunk range %d", idx, ch.Vertices.Len())
			}
			rebuilt = append(rebuilt, ch.Vertices.Position(int(idx)))
		}
	}
	if len(rebuilt) != len(indices) {
		t.Fatalf("rebuilt %d corners, want %d", len(rebuilt), len(indices))
	}
	for i, idx := range indices {
		if rebuilt[i] != ps[idx] {
			t.Errorf("corner %d = %v, want %v", i, rebuilt[i], ps[idx])
		}
	}
}

func TestSplitSingleChunkUnderLimit(t *testing.T) {
	buf := positions(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	chunks, err := Split(buf, []uint32{0, 1, 2}, MaxIndex)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || chunks[0].Vertices.Len() != 3 {
		t.Fatalf("chunks = %+v", chunks)
	}
}

func TestSplitNil(t *testing.T) {
	if _, err := Split(nil, []uint32{0}, MaxIndex); err != ErrNilBuffer {
		t.Errorf("err = %v, want ErrNilBuffer", err)
	}
	if _, err := Split(positions(mgl32.Vec3{}), nil, MaxIndex); err != ErrNilBuffer {
		t.Errorf("err = %v, want ErrNilBuffer", err)
	}
}

func TestJoinUnionLayout(t *testing.T) {
	a := positions(mgl32.Vec3{1, 2, 3})
	withNormal := MustLayout(
		Attribute{Name: "Position", Type: Float32, Components: 3},
		Attribute{Name: "Normal", Type: Float32, Components: 3},
	)
	b := NewBuffer(withNormal, 1)
	b.SetFloats(0, "Position", 4, 5, 6)
	b.SetFloats(0, "Normal", 0, 0, 1)

	out, idx, err := Join([]*Buffer{a, b}, [][]uint32{{0}, {0}})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Layout.Equal(withNormal) {
		t.Errorf("layout = %v", out.Layout.Names())
	}
	if want := []uint32{0, 1}; !reflect.DeepEqual(idx, want) {
		t.Errorf("indices = %v, want %v", idx, want)
	}
	if got := out.Floats(0, "Normal"); !reflect.DeepEqual(got, []float32{0, 0, 0}) {
		t.Errorf("missing normal = %v", got)
	}
	if got := out.Position(1); got != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("second position = %v", got)
	}
}

func triangleMesh() *scene.Mesh {
	return &scene.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Loops:     []uint32{0, 1, 2},
		Triangles: []scene.Triangle{{Loops: [3]uint32{0, 1, 2}}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:       [][]mgl32.Vec2{{{0, 0}, {1, 0}, {0, 1}}},
		Materials: []string{"mat"},

		VertexGroups: []string{"root", "child"},
		Weights: [][]scene.GroupWeight{
			{{Group: 0, Weight: 1}},
			{{Group: 0, Weight: 0.5}, {Group: 1, Weight: 0.5}},
			{{Group: 1, Weight: 0.3}, {Group: 0, Weight: 0.3}, {Group: 1, Weight: 0}},
		},
	}
}

func TestBuilderStatic(t *testing.T) {
	buf := NewBuilder(triangleMesh(), nil).Build(Format{Tangents: []string{"Tangent"}, BlendIndices: UInt8})
	if buf.Len() != 3 {
		t.Fatalf("records = %d", buf.Len())
	}
	want := []string{"Position", "Normal", "Colour0", "TexCoord0", "Tangent"}
	if got := buf.Layout.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %v, want %v", got, want)
	}
	if got := buf.Uints(0, "Colour0"); !reflect.DeepEqual(got, []uint32{255, 255, 255, 255}) {
		t.Errorf("default colour = %v", got)
	}
	if got := buf.Floats(2, "TexCoord0"); !reflect.DeepEqual(got, []float32{0, 0}) {
		t.Errorf("flipped uv = %v", got)
	}
	if got := buf.Floats(0, "TexCoord0"); !reflect.DeepEqual(got, []float32{0, 1}) {
		t.Errorf("flipped uv = %v", got)
	}
	if got := buf.Floats(0, "Tangent"); !reflect.DeepEqual(got, []float32{1, 0, 0, 1}) {
		t.Errorf("tangent = %v", got)
	}
}

func TestBuilderSkinned(t *testing.T) {
	buf := NewBuilder(triangleMesh(), map[int]int{0: 0, 1: 1}).Build(Format{
		Tangents:     []string{"Tangent0", "Tangent1", "Tangent2"},
		BlendIndices: UInt16,
	})
	attr, _ := buf.Layout.Find("BlendIndices")
	if attr.Type != UInt16 {
		t.Errorf("blend indices type = %v", attr.Type)
	}
	if buf.Layout.Has("Tangent1") {
		t.Errorf("one uv channel should give one tangent")
	}

	for i := 0; i < buf.Len(); i++ {
		w := buf.Uints(i, "BlendWeights")
		sum := w[0] + w[1] + w[2] + w[3]
		if sum != 255 {
			t.Errorf("vertex %d weights %v sum to %d", i, w, sum)
		}
	}
	if got := buf.Uints(0, "BlendIndices"); got[0] != 0 || buf.Uints(0, "BlendWeights")[0] != 255 {
		t.Errorf("vertex 0 skin = %v", got)
	}
	// equal weights keep the lower bone first
	if got := buf.Uints(2, "BlendIndices"); got[0] != 0 || got[1] != 1 {
		t.Errorf("vertex 2 bones = %v", got)
	}
}

func TestBuilderEmptyMesh(t *testing.T) {
	m := triangleMesh()
	m.Materials = nil
	if buf := NewBuilder(m, nil).Build(Format{}); buf != nil {
		t.Errorf("mesh without materials should build nothing")
	}
	if buf := NewBuilder(&scene.Mesh{Materials: []string{"a"}}, nil).Build(Format{}); buf != nil {
		t.Errorf("mesh without loops should build nothing")
	}
}

func TestPackInfluencesKeepsFour(t *testing.T) {
	s := packInfluences([]influence{{0, 0.1}, {1, 0.4}, {2, 0.2}, {3, 0.15}, {4, 0.15}})
	if s.bones[0] != 1 || s.bones[1] != 2 {
		t.Errorf("bones = %v", s.bones)
	}
	if s.bones[2] != 3 || s.bones[3] != 4 {
		t.Errorf("tie order = %v", s.bones)
	}
	sum := 0
	for _, w := range s.weights {
		sum += int(w)
	}
	if sum != 255 {
		t.Errorf("weights %v sum %d", s.weights, sum)
	}
}

func TestComponentMaxUint(t *testing.T) {
	for _, tt := range []struct {
		c    ComponentType
		want uint32
	}{{UInt8, 255}, {UNorm8, 255}, {UInt16, 65535}} {
		if got := tt.c.MaxUint(); got != tt.want {
			t.Errorf("%v.MaxUint() = %d, want %d", tt.c, got, tt.want)
		}
	}

	b := NewBuffer(MustLayout(Attribute{Name: "BlendIndices", Type: UInt16, Components: 4}), 1)
	b.SetUints(0, "BlendIndices", 299, 65535)
	if got := b.Uints(0, "BlendIndices"); got[0] != 299 || got[1] != 65535 {
		t.Errorf("uint16 indices = %v", got)
	}
}
