package vertex

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer stores records back to back in Data, each Layout.Stride() bytes
// long, little endian.
type Buffer struct {
	Layout Layout
	Data   []byte
}

// NewBuffer allocates count zeroed records.
func NewBuffer(layout Layout, count int) *Buffer {
	return &Buffer{
		Layout: layout,
		Data:   make([]byte, count*layout.Stride()),
	}
}

func (b *Buffer) Stride() int {
	return b.Layout.Stride()
}

func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	stride := b.Stride()
	if stride == 0 {
		return 0
	}
	return len(b.Data) / stride
}

// Record returns record i, sharing Data.
func (b *Buffer) Record(i int) []byte {
	stride := b.Stride()
	return b.Data[i*stride : (i+1)*stride]
}

func (b *Buffer) field(i int, name string) ([]byte, Attribute) {
	attr, ok := b.Layout.Find(name)
	if !ok {
		panic("vertex buffer has no attribute " + name)
	}
	off, _ := b.Layout.Offset(name)
	rec := b.Record(i)
	return rec[off : off+attr.Size()], attr
}

func (b *Buffer) SetFloats(i int, name string, v ...float32) {
	buf, attr := b.field(i, name)
	for c := 0; c < attr.Components && c < len(v); c++ {
		binary.LittleEndian.PutUint32(buf[c*4:], math.Float32bits(v[c]))
	}
}

func (b *Buffer) SetBytes(i int, name string, v ...uint8) {
	buf, attr := b.field(i, name)
	for c := 0; c < attr.Components && c < len(v); c++ {
		buf[c] = v[c]
	}
}

// SetUints stores integer components, truncated to the attribute type.
// Callers check ranges with ComponentType.MaxUint.
func (b *Buffer) SetUints(i int, name string, v ...uint32) {
	buf, attr := b.field(i, name)
	for c := 0; c < attr.Components && c < len(v); c++ {
		switch attr.Type {
		case UInt16:
			binary.LittleEndian.PutUint16(buf[c*2:], uint16(v[c]))
		case UInt8, UNorm8:
			buf[c] = uint8(v[c])
		case Float32:
			binary.LittleEndian.PutUint32(buf[c*4:], math.Float32bits(float32(v[c])))
		}
	}
}

// Floats decodes a float attribute. UNorm8 components are scaled to [0,1].
func (b *Buffer) Floats(i int, name string) []float32 {
	buf, attr := b.field(i, name)
	out := make([]float32, attr.Components)
	for c := range out {
		switch attr.Type {
		case Float32:
			out[c] = math.Float32frombits(binary.LittleEndian.Uint32(buf[c*4:]))
		case UNorm8:
			out[c] = float32(buf[c]) / 255
		case UInt8:
			out[c] = float32(buf[c])
		case UInt16:
			out[c] = float32(binary.LittleEndian.Uint16(buf[c*2:]))
		}
	}
	return out
}

// Uints decodes integer and normalized attributes as raw integers.
func (b *Buffer) Uints(i int, name string) []uint32 {
	buf, attr := b.field(i, name)
	out := make([]uint32, attr.Components)
	for c := range out {
		switch attr.Type {
		case UInt16:
			out[c] = uint32(binary.LittleEndian.Uint16(buf[c*2:]))
		case UInt8, UNorm8:
			out[c] = uint32(buf[c])
		case Float32:
			out[c] = uint32(math.Float32frombits(binary.LittleEndian.Uint32(buf[c*4:])))
		}
	}
	return out
}

func (b *Buffer) Position(i int) mgl32.Vec3 {
	rec := b.Record(i)
	off, _ := b.Layout.Offset("Position")
	return mgl32.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(rec[off:])),
		math.Float32frombits(binary.LittleEndian.Uint32(rec[off+4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(rec[off+8:])),
	}
}

// Bounds returns the axis aligned box of all positions. An empty buffer gives
// zero vectors.
func (b *Buffer) Bounds() (bbMin, bbMax mgl32.Vec3) {
	n := b.Len()
	if n == 0 || !b.Layout.Has("Position") {
		return
	}
	bbMin = b.Position(0)
	bbMax = bbMin
	for i := 1; i < n; i++ {
		p := b.Position(i)
		for c := 0; c < 3; c++ {
			if p[c] < bbMin[c] {
				bbMin[c] = p[c]
			}
			if p[c] > bbMax[c] {
				bbMax[c] = p[c]
			}
		}
	}
	return
}

// Subset gathers the records at indices into a new buffer.
func (b *Buffer) Subset(indices []uint32) *Buffer {
	stride := b.Stride()
	out := &Buffer{
		Layout: b.Layout,
		Data:   make([]byte, len(indices)*stride),
	}
	for i, idx := range indices {
		copy(out.Data[i*stride:], b.Data[int(idx)*stride:int(idx+1)*stride])
	}
	return out
}

// Filter keeps only attributes accepted by keep, preserving record order.
func (b *Buffer) Filter(keep func(Attribute) bool) *Buffer {
	type span struct{ from, size int }
	layout := make(Layout, 0, len(b.Layout))
	spans := make([]span, 0, len(b.Layout))
	off := 0
	for _, a := range b.Layout {
		if keep(a) {
			layout = append(layout, a)
			spans = append(spans, span{off, a.Size()})
		}
		off += a.Size()
	}
	if len(layout) == len(b.Layout) {
		return b
	}

	n := b.Len()
	oldStride := b.Stride()
	out := NewBuffer(layout, n)
	newStride := out.Stride()
	for i := 0; i < n; i++ {
		src := b.Data[i*oldStride : (i+1)*oldStride]
		dst := out.Data[i*newStride : (i+1)*newStride]
		pos := 0
		for _, s := range spans {
			copy(dst[pos:pos+s.size], src[s.from:s.from+s.size])
			pos += s.size
		}
	}
	return out
}

// Without drops the named attributes.
func (b *Buffer) Without(names ...string) *Buffer {
	return b.Filter(func(a Attribute) bool {
		for _, name := range names {
			if a.Name == name {
				return false
			}
		}
		return true
	})
}
