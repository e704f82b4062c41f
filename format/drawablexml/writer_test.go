package drawablexml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/collision"
	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/vertex"
)

func testDrawable() *drawable.Drawable {
	buf := vertex.NewBuffer(vertex.MustLayout(
		vertex.Attribute{Name: "Position", Type: vertex.Float32, Components: 3},
		vertex.Attribute{Name: "Colour0", Type: vertex.UNorm8, Components: 4},
	), 3)
	for i, p := range []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1.5, 0}} {
		buf.SetFloats(i, "Position", p[0], p[1], p[2])
		buf.SetBytes(i, "Colour0", 255, 128, 0, 255)
	}
	g := &drawable.Geometry{
		Vertices: buf,
		Indices:  []uint32{0, 1, 2},
		BoneIDs:  []int{0, 1},
		VertexLayout: &drawable.VertexLayout{
			Semantics:      "PC",
			Formats:        "35",
			NonInterleaved: true,
		},
	}
	g.UpdateBounds()

	return &drawable.Drawable{
		Name:  "crate",
		Flags: [drawable.LodCount]uint32{1, 0, 0, 0},
		ShaderGroup: &drawable.ShaderGroup{
			Unknown30: 8,
			Textures:  []*drawable.Texture{{Name: "wood", FileName: "wood.dds", UsageFlags: []string{"NOT_HALF", "X2"}}},
			Shaders: []*drawable.Shader{{
				Name:         "default",
				FileName:     "default.sps",
				DrawBucket:   2,
				BufferSizes:  "16 4",
				RenderBucket: 1,
				Parameters: []drawable.Parameter{
					&drawable.TextureParameter{Name: "DiffuseSampler", TextureName: "wood"},
					&drawable.VectorParameter{Name: "tint", Value: mgl32.Vec4{1, 0.5, 0, 0}},
					&drawable.ArrayParameter{Name: "wind", Values: []mgl32.Vec4{{1, 2, 3, 4}, {}}},
					&drawable.CBufferParameter{Name: "emissive", Buffer: 1, Offset: 8, Length: 8, Components: 2, Value: mgl32.Vec4{0.25, 2}},
				},
			}},
		},
		Skeleton: &drawable.Skeleton{
			Bones: []*drawable.Bone{{
				Name:             "root",
				ParentIndex:      -1,
				SiblingIndex:     -1,
				LastSiblingIndex: 1,
				Flags:            []string{"Unk0"},
				Rotation:         mgl32.QuatIdent(),
				Scale:            mgl32.Vec3{1, 1, 1},
			}},
		},
		Joints: &drawable.Joints{},
		Models: [drawable.LodCount][]*drawable.Model{
			{{RenderMask: 255, HasSkin: true, MatrixCount: 1, BoneMapping: []uint16{0, 7}, Geometries: []*drawable.Geometry{g}}},
		},
		Lights: []*drawable.Light{{Kind: "Point", Colour: [3]uint8{255, 0, 0}, Intensity: 2}},
		Bounds: []*collision.Bound{{
			Name:               "comp",
			Kind:               scene.BoundComposite,
			CompositeTransform: mgl32.Ident4(),
			Children: []*collision.Bound{{
				Name:               "box",
				Kind:               scene.BoundBox,
				Material:           collision.DefaultMaterial(config.GameGTA),
				CompositeTransform: mgl32.Translate3D(1, 2, 3),
			}},
		}},
	}
}

func writeXML(t *testing.T, fn func(io.Writer, *drawable.Drawable) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := fn(&buf, testDrawable()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("malformed xml: %v\n%s", err, out)
		}
	}
	return out
}

func TestWriteGTA(t *testing.T) {
	out := writeXML(t, WriteGTA)
	for _, want := range []string{
		"<Drawable>",
		"<Name>crate</Name>",
		`<FlagsHigh value="1"></FlagsHigh>`,
		`<Unknown30 value="8"></Unknown30>`,
		"<FileName>wood.dds</FileName>",
		"<UsageFlags>NOT_HALF, X2</UsageFlags>",
		"<FileName>default.sps</FileName>",
		`<RenderBucket value="1"></RenderBucket>`,
		`<Item name="DiffuseSampler" type="Texture">`,
		`<Item name="tint" type="Vector" x="1" y="0.5" z="0" w="0">`,
		`<Value x="1" y="2" z="3" w="4"></Value>`,
		`value_type="float2" x="0.25" y="2"`,
		"<Flags>Unk0</Flags>",
		"<Joints>",
		`<Unknown1 value="1"></Unknown1>`,
		"<BoneIDs>0, 1</BoneIDs>",
		`<Layout type="GTAV1">`,
		"<Colour0></Colour0>",
		"\n0 1.5 0   255 128 0 255\n",
		"<Data>\n0 1 2\n</Data>",
		"<Lights>",
		`<Colour r="255" g="0" b="0">`,
		`<Item type="Composite">`,
		`<CompositePosition x="1" y="2" z="3">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	for _, absent := range []string{"LastSiblingIndex", "DrawBucket", "BoneMapping", "VertexLayout", "buffer_size"} {
		if strings.Contains(out, absent) {
			t.Errorf("unexpected %q in gta output", absent)
		}
	}
}

func TestWriteRDR(t *testing.T) {
	out := writeXML(t, WriteRDR)
	for _, want := range []string{
		"<RDR2Drawable>",
		`<LastSiblingIndex value="1"></LastSiblingIndex>`,
		`<DrawBucket value="2"></DrawBucket>`,
		`<DrawBucketFlag value="false"></DrawBucketFlag>`,
		`<Parameters buffer_size="16 4">`,
		"<BoneMapping>0, 7</BoneMapping>",
		"<Semantics>PC</Semantics>",
		`<NonInterleaved value="true"></NonInterleaved>`,
		`<Layout type="RDR2">`,
		`<Index value="0"></Index>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	for _, absent := range []string{"<Unknown30", "<Joints>", "<Lights>", "<RenderBucket", "<Unknown1 "} {
		if strings.Contains(out, absent) {
			t.Errorf("unexpected %q in rdr output", absent)
		}
	}
}

func TestRDROmitsEmptyTextureDictionary(t *testing.T) {
	d := testDrawable()
	d.ShaderGroup.Textures = nil
	var buf bytes.Buffer
	if err := WriteRDR(&buf, d); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "TextureDictionary") {
		t.Errorf("nil dictionary should be omitted")
	}

	d.ShaderGroup.Textures = []*drawable.Texture{}
	buf.Reset()
	if err := WriteGTA(&buf, d); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<TextureDictionary></TextureDictionary>") {
		t.Errorf("empty dictionary should be written")
	}
}

func TestEmptyLodsOmitted(t *testing.T) {
	out := writeXML(t, WriteGTA)
	if !strings.Contains(out, "<DrawableModelsHigh>") || strings.Contains(out, "DrawableModelsLow") {
		t.Errorf("only populated lods should be written")
	}
}

func TestIndexDataLines(t *testing.T) {
	indices := make([]uint32, indicesPerLine+2)
	for i := range indices {
		indices[i] = uint32(i)
	}
	lines := strings.Split(strings.Trim(indexData(indices), "\n"), "\n")
	if len(lines) != 2 || lines[1] != "24 25" {
		t.Errorf("lines = %q", lines)
	}
	if indexData(nil) != "" {
		t.Errorf("empty index data should be empty")
	}
}

func TestFormatFloat(t *testing.T) {
	for in, want := range map[float32]string{
		0:     "0",
		1:     "1",
		-0.5:  "-0.5",
		0.1:   "0.1",
		1e-07: "0.0000001",
	} {
		if got := formatFloat(in); got != want {
			t.Errorf("formatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
