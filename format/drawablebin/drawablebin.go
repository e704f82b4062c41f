// Package drawablebin writes the geometry of an assembled drawable into a
// flat little endian container: header, model offsets, models, each model
// followed by its geometries padded to 0x10.
package drawablebin

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/utils"
	"github.com/mogaika/drawable_exporter/vertex"
)

const (
	MAGIC   = 0x42575244 // "DRWB"
	VERSION = 1

	HEADER_SIZE          = 0x70
	HEADER_NAME_SIZE     = 0x20
	MODEL_HEADER_SIZE    = 0x10
	GEOMETRY_HEADER_SIZE = 0x50
	GEOMETRY_SHADER_SIZE = 0x20
	ATTRIBUTE_SIZE       = 0x14
	ATTRIBUTE_NAME_SIZE  = 0x10
	INDEX_FORMAT_UINT16  = 2
	INDEX_FORMAT_UINT32  = 4
	PADDING              = 0x10
)

type Options struct {
	Game config.Game
	// Charmap name used for fixed size names, see config.FindEncoding.
	Encoding string
}

type marshaler struct {
	cm      *charmap.Charmap
	shaders []*drawable.Shader
}

// Write serializes every model of d. Nothing is written when any record
// fails to encode.
func Write(w io.Writer, d *drawable.Drawable, opts Options) error {
	cm, err := config.FindEncoding(opts.Encoding)
	if err != nil {
		return err
	}
	m := &marshaler{cm: cm}
	if d.ShaderGroup != nil {
		m.shaders = d.ShaderGroup.Shaders
	}

	buf, err := m.drawable(d, opts.Game)
	if err != nil {
		return errors.Wrapf(err, "drawable %s", d.Name)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func putVec3(b []byte, v mgl32.Vec3) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
}

func pad(buf *bytes.Buffer) {
	if n := utils.Align(buf.Len(), PADDING) - buf.Len(); n != 0 {
		buf.Write(make([]byte, n))
	}
}

func (m *marshaler) drawable(d *drawable.Drawable, game config.Game) (*bytes.Buffer, error) {
	var models []*drawable.Model
	var lods []drawable.LodLevel
	for lod, list := range d.Models {
		for _, model := range list {
			models = append(models, model)
			lods = append(lods, drawable.LodLevel(lod))
		}
	}

	offsetsBuf := make([]byte, utils.Align(len(models)*4, PADDING))
	var dataStream bytes.Buffer
	for i, model := range models {
		binary.LittleEndian.PutUint32(offsetsBuf[i*4:], uint32(HEADER_SIZE+len(offsetsBuf)+dataStream.Len()))
		mb, err := m.model(model, lods[i])
		if err != nil {
			return nil, errors.Wrapf(err, "model %d", i)
		}
		dataStream.Write(mb.Bytes())
		pad(&dataStream)
	}

	var buf [HEADER_SIZE]byte
	binary.LittleEndian.PutUint32(buf[0:], MAGIC)
	binary.LittleEndian.PutUint16(buf[4:], VERSION)
	binary.LittleEndian.PutUint16(buf[6:], uint16(game))
	binary.LittleEndian.PutUint32(buf[8:], uint32(HEADER_SIZE+len(offsetsBuf)+dataStream.Len()))
	binary.LittleEndian.PutUint32(buf[0xc:], uint32(len(models)))
	for lod, flags := range d.Flags {
		binary.LittleEndian.PutUint32(buf[0x10+lod*4:], flags)
	}
	putVec3(buf[0x20:], d.BoundingSphereCenter)
	binary.LittleEndian.PutUint32(buf[0x2c:], math.Float32bits(d.BoundingSphereRadius))
	putVec3(buf[0x30:], d.BoundingBoxMin)
	putVec3(buf[0x40:], d.BoundingBoxMax)
	name, err := utils.StringToBytesBuffer(m.cm, d.Name, HEADER_NAME_SIZE, true)
	if err != nil {
		return nil, err
	}
	copy(buf[0x50:0x70], name)

	var result bytes.Buffer
	result.Write(buf[:])
	result.Write(offsetsBuf)
	result.Write(dataStream.Bytes())
	return &result, nil
}

func (m *marshaler) model(model *drawable.Model, lod drawable.LodLevel) (*bytes.Buffer, error) {
	var buf [MODEL_HEADER_SIZE]byte
	buf[0] = uint8(lod)
	buf[1] = model.RenderMask
	buf[2] = model.Flags
	if model.HasSkin {
		buf[3] = 1
	}
	binary.LittleEndian.PutUint16(buf[4:], uint16(model.BoneIndex))
	binary.LittleEndian.PutUint16(buf[6:], uint16(model.MatrixCount))
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(model.Geometries)))

	var result bytes.Buffer
	result.Write(buf[:])
	for i, g := range model.Geometries {
		gb, err := m.geometry(g)
		if err != nil {
			return nil, errors.Wrapf(err, "geometry %d", i)
		}
		result.Write(gb.Bytes())
		pad(&result)
	}
	return &result, nil
}

// indexFormat narrows indices to 16 bits when every one fits.
func indexFormat(indices []uint32) int {
	for _, idx := range indices {
		if idx > vertex.MaxIndex {
			return INDEX_FORMAT_UINT32
		}
	}
	return INDEX_FORMAT_UINT16
}

func (m *marshaler) geometry(g *drawable.Geometry) (*bytes.Buffer, error) {
	if g.Vertices == nil || g.Indices == nil {
		return nil, vertex.ErrNilBuffer
	}
	layout := g.Vertices.Layout
	format := indexFormat(g.Indices)

	var buf [GEOMETRY_HEADER_SIZE]byte
	binary.LittleEndian.PutUint16(buf[0:], uint16(g.ShaderIndex))
	binary.LittleEndian.PutUint16(buf[2:], uint16(format))
	binary.LittleEndian.PutUint32(buf[4:], uint32(g.Vertices.Len()))
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(g.Indices)))
	binary.LittleEndian.PutUint16(buf[0xc:], uint16(layout.Stride()))
	binary.LittleEndian.PutUint16(buf[0xe:], uint16(len(layout)))
	putVec3(buf[0x10:], g.BoundingBoxMin)
	putVec3(buf[0x20:], g.BoundingBoxMax)
	if g.ShaderIndex >= 0 && g.ShaderIndex < len(m.shaders) {
		name, err := utils.StringToBytesBuffer(m.cm, m.shaders[g.ShaderIndex].Name, GEOMETRY_SHADER_SIZE, true)
		if err != nil {
			return nil, err
		}
		copy(buf[0x30:0x50], name)
	}

	var result bytes.Buffer
	result.Write(buf[:])

	offset := 0
	for _, a := range layout {
		var attr [ATTRIBUTE_SIZE]byte
		name, err := utils.StringToBytesBuffer(m.cm, a.Name, ATTRIBUTE_NAME_SIZE, true)
		if err != nil {
			return nil, err
		}
		copy(attr[:ATTRIBUTE_NAME_SIZE], name)
		attr[0x10] = uint8(a.Type)
		attr[0x11] = uint8(a.Components)
		binary.LittleEndian.PutUint16(attr[0x12:], uint16(offset))
		offset += a.Size()
		result.Write(attr[:])
	}
	pad(&result)

	result.Write(g.Vertices.Data)
	pad(&result)

	indices := make([]byte, len(g.Indices)*format)
	for i, idx := range g.Indices {
		if format == INDEX_FORMAT_UINT16 {
			binary.LittleEndian.PutUint16(indices[i*2:], uint16(idx))
		} else {
			binary.LittleEndian.PutUint32(indices[i*4:], idx)
		}
	}
	result.Write(indices)
	return &result, nil
}
