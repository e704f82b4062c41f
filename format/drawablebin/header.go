package drawablebin

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/utils"
)

type Header struct {
	Version      uint16
	Game         config.Game
	FileSize     uint32
	ModelsCount  uint32
	Flags        [drawable.LodCount]uint32
	Name         string
	ModelOffsets []uint32
}

// ParseHeader reads the container header and model offset table.
func ParseHeader(raw []byte, cm *charmap.Charmap) (*Header, error) {
	if len(raw) < HEADER_SIZE {
		return nil, errors.Errorf("container too small: %d bytes", len(raw))
	}
	if magic := binary.LittleEndian.Uint32(raw[0:]); magic != MAGIC {
		return nil, errors.Errorf("invalid magic %#x", magic)
	}
	h := &Header{
		Version:     binary.LittleEndian.Uint16(raw[4:]),
		Game:        config.Game(binary.LittleEndian.Uint16(raw[6:])),
		FileSize:    binary.LittleEndian.Uint32(raw[8:]),
		ModelsCount: binary.LittleEndian.Uint32(raw[0xc:]),
		Name:        utils.BytesToString(cm, raw[0x50:0x70]),
	}
	for lod := range h.Flags {
		h.Flags[lod] = binary.LittleEndian.Uint32(raw[0x10+lod*4:])
	}
	if int(h.FileSize) != len(raw) {
		return nil, errors.Errorf("file size %d does not match header %d", len(raw), h.FileSize)
	}
	if HEADER_SIZE+int(h.ModelsCount)*4 > len(raw) {
		return nil, errors.Errorf("model table of %d entries overflows", h.ModelsCount)
	}
	h.ModelOffsets = make([]uint32, h.ModelsCount)
	for i := range h.ModelOffsets {
		h.ModelOffsets[i] = binary.LittleEndian.Uint32(raw[HEADER_SIZE+i*4:])
	}
	return h, nil
}
