package vertex

import (
	"github.com/pkg/errors"
)

// Join concatenates buffers into one. The result layout is the union of the
// inputs; attributes a buffer lacks are left zero. indices[i] belongs to
// buffers[i] and is rebased onto the joined buffer.
func Join(buffers []*Buffer, indices [][]uint32) (*Buffer, []uint32, error) {
	if len(buffers) != len(indices) {
		return nil, nil, errors.Errorf("%d buffers but %d index lists", len(buffers), len(indices))
	}

	var attrs []Attribute
	known := make(map[string]Attribute)
	total := 0
	for _, b := range buffers {
		if b == nil {
			return nil, nil, ErrNilBuffer
		}
		for _, a := range b.Layout {
			if prev, ok := known[a.Name]; ok {
				if prev != a {
					return nil, nil, errors.Errorf("attribute %s declared as %v and %v", a.Name, prev, a)
				}
				continue
			}
			known[a.Name] = a
			attrs = append(attrs, a)
		}
		total += b.Len()
	}

	layout, err := NewLayout(attrs...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "joined layout")
	}

	out := NewBuffer(layout, total)
	var outIndices []uint32
	base := 0
	for bi, b := range buffers {
		type move struct{ from, to, size int }
		moves := make([]move, 0, len(b.Layout))
		from := 0
		for _, a := range b.Layout {
			to, _ := layout.Offset(a.Name)
			moves = append(moves, move{from, to, a.Size()})
			from += a.Size()
		}
		for i := 0; i < b.Len(); i++ {
			src := b.Record(i)
			dst := out.Record(base + i)
			for _, m := range moves {
				copy(dst[m.to:m.to+m.size], src[m.from:m.from+m.size])
			}
		}
		for _, idx := range indices[bi] {
			outIndices = append(outIndices, idx+uint32(base))
		}
		base += b.Len()
	}

	return out, outIndices, nil
}
