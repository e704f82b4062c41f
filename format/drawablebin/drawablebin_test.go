package drawablebin

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/vertex"
)

func triangle(indices []uint32, count int) *drawable.Geometry {
	buf := vertex.NewBuffer(vertex.MustLayout(
		vertex.Attribute{Name: "Position", Type: vertex.Float32, Components: 3},
		vertex.Attribute{Name: "Colour0", Type: vertex.UNorm8, Components: 4},
	), count)
	for i := 0; i < count; i++ {
		buf.SetFloats(i, "Position", float32(i), 0, 0)
	}
	g := &drawable.Geometry{Vertices: buf, Indices: indices}
	g.UpdateBounds()
	return g
}

func testDrawable(g *drawable.Geometry) *drawable.Drawable {
	return &drawable.Drawable{
		Name:  "crate",
		Flags: [drawable.LodCount]uint32{1, 0, 1, 0},
		ShaderGroup: &drawable.ShaderGroup{
			Shaders: []*drawable.Shader{{Name: "default"}},
		},
		Models: [drawable.LodCount][]*drawable.Model{
			{{RenderMask: 255, Geometries: []*drawable.Geometry{g}}},
			nil,
			{{RenderMask: 1, HasSkin: true, MatrixCount: 3, Geometries: []*drawable.Geometry{triangle([]uint32{0, 1, 2}, 3)}}},
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	d := testDrawable(triangle([]uint32{0, 1, 2}, 3))
	if err := Write(&buf, d, Options{Game: config.GameRDR}); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()

	h, err := ParseHeader(raw, charmap.Windows1252)
	if err != nil {
		t.Fatal(err)
	}
	if h.Name != "crate" || h.Game != config.GameRDR || h.ModelsCount != 2 || h.Version != VERSION {
		t.Errorf("header = %+v", h)
	}
	if h.Flags != d.Flags {
		t.Errorf("flags = %v", h.Flags)
	}
	for i, off := range h.ModelOffsets {
		if off%PADDING != 0 || int(off) >= len(raw) {
			t.Errorf("model %d offset %#x", i, off)
		}
	}

	second := raw[h.ModelOffsets[1]:]
	if second[0] != uint8(drawable.LodLow) || second[1] != 1 || second[3] != 1 {
		t.Errorf("second model header = % x", second[:MODEL_HEADER_SIZE])
	}
	if mc := binary.LittleEndian.Uint16(second[6:]); mc != 3 {
		t.Errorf("matrix count = %d", mc)
	}
}

func TestWriteGeometry(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testDrawable(triangle([]uint32{0, 1, 2}, 3)), Options{Game: config.GameGTA}); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()
	h, err := ParseHeader(raw, charmap.Windows1252)
	if err != nil {
		t.Fatal(err)
	}

	geom := raw[h.ModelOffsets[0]+MODEL_HEADER_SIZE:]
	if f := binary.LittleEndian.Uint16(geom[2:]); f != INDEX_FORMAT_UINT16 {
		t.Errorf("index format = %d", f)
	}
	if n := binary.LittleEndian.Uint32(geom[4:]); n != 3 {
		t.Errorf("vertex count = %d", n)
	}
	stride := int(binary.LittleEndian.Uint16(geom[0xc:]))
	attrs := int(binary.LittleEndian.Uint16(geom[0xe:]))
	if stride != 16 || attrs != 2 {
		t.Errorf("stride %d attrs %d", stride, attrs)
	}
	if name := string(bytes.TrimRight(geom[0x30:0x50], "\x00")); name != "default" {
		t.Errorf("shader name = %q", name)
	}
	if maxX := math.Float32frombits(binary.LittleEndian.Uint32(geom[0x20:])); maxX != 2 {
		t.Errorf("box max x = %v", maxX)
	}

	colour := geom[GEOMETRY_HEADER_SIZE+ATTRIBUTE_SIZE:]
	if string(bytes.TrimRight(colour[:ATTRIBUTE_NAME_SIZE], "\x00")) != "Colour0" || binary.LittleEndian.Uint16(colour[0x12:]) != 12 {
		t.Errorf("colour attribute = % x", colour[:ATTRIBUTE_SIZE])
	}

	data := geom[GEOMETRY_HEADER_SIZE+0x30:]
	if x := math.Float32frombits(binary.LittleEndian.Uint32(data[stride:])); x != 1 {
		t.Errorf("second vertex x = %v", x)
	}
	indices := data[0x30:]
	for i, want := range []uint16{0, 1, 2} {
		if got := binary.LittleEndian.Uint16(indices[i*2:]); got != want {
			t.Errorf("index %d = %d", i, got)
		}
	}
}

func TestIndexFormat(t *testing.T) {
	if indexFormat([]uint32{0, 65535}) != INDEX_FORMAT_UINT16 {
		t.Errorf("65535 fits 16 bits")
	}
	if indexFormat([]uint32{0, 70000}) != INDEX_FORMAT_UINT32 {
		t.Errorf("70000 needs 32 bits")
	}
}

func TestWriteErrors(t *testing.T) {
	var buf bytes.Buffer
	d := testDrawable(&drawable.Geometry{})
	if err := Write(&buf, d, Options{}); err == nil {
		t.Errorf("nil geometry buffers should fail")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written on error")
	}

	d = testDrawable(triangle([]uint32{0, 1, 2}, 3))
	if err := Write(&buf, d, Options{Encoding: "no such charmap"}); err == nil {
		t.Errorf("unknown encoding should fail")
	}

	d.Name = "a_name_that_is_far_too_long_for_the_header"
	if err := Write(&buf, d, Options{}); err == nil {
		t.Errorf("long name should fail")
	}
}

func TestParseHeaderRejectsGarbage(t *testing.T) {
	if _, err := ParseHeader(make([]byte, HEADER_SIZE), charmap.Windows1252); err == nil {
		t.Errorf("zero magic should fail")
	}
	if _, err := ParseHeader([]byte{1, 2}, charmap.Windows1252); err == nil {
		t.Errorf("short input should fail")
	}
}
