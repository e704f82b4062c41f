package drawablexml

import (
	"strconv"
	"strings"

	"github.com/mogaika/drawable_exporter/vertex"
)

const (
	attributeSeparator = "   "
	indicesPerLine     = 24
)

// vertexData writes one record per line, attributes separated by three
// spaces and components by one.
func vertexData(b *vertex.Buffer) string {
	if b.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('\n')
	for i := 0; i < b.Len(); i++ {
		for ai, a := range b.Layout {
			if ai != 0 {
				sb.WriteString(attributeSeparator)
			}
			writeAttribute(&sb, b, i, a)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeAttribute(sb *strings.Builder, b *vertex.Buffer, i int, a vertex.Attribute) {
	if a.Type == vertex.Float32 {
		for c, f := range b.Floats(i, a.Name) {
			if c != 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatFloat(f))
		}
		return
	}
	for c, u := range b.Uints(i, a.Name) {
		if c != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(uint64(u), 10))
	}
}

func indexData(indices []uint32) string {
	if len(indices) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('\n')
	for i, idx := range indices {
		if i%indicesPerLine != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(uint64(idx), 10))
		if i%indicesPerLine == indicesPerLine-1 || i == len(indices)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
