package vertex

import (
	"github.com/pkg/errors"
)

// MaxIndex is the largest vertex count a 16 bit index buffer can address.
const MaxIndex = 65535

// ErrNilBuffer is returned by Split when either buffer is missing.
var ErrNilBuffer = errors.New("vertex buffer and index buffer cannot be nil")

// Chunk is one piece of a split geometry, with indices local to Vertices.
type Chunk struct {
	Vertices *Buffer
	Indices  []uint32
}

// Split breaks an indexed triangle list into chunks whose vertex count stays
// at or below limit. Triangles are never divided across chunks; chunk order
// follows triangle order.
func Split(b *Buffer, indices []uint32, limit int) ([]Chunk, error) {
	if b == nil || indices == nil {
		return nil, ErrNilBuffer
	}
	if limit < 3 {
		return nil, errors.Errorf("split limit %d is smaller than a triangle", limit)
	}

	var chunks []Chunk
	remap := make(map[uint32]uint32)
	var picked []uint32
	var local []uint32

	flush := func() {
		if len(local) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Vertices: b.Subset(picked),
			Indices:  local,
		})
		remap = make(map[uint32]uint32)
		picked = nil
		local = nil
	}

	for start := 0; start < len(indices); start += 3 {
		end := start + 3
		if end > len(indices) {
			end = len(indices)
		}
		tri := indices[start:end]
		for _, idx := range tri {
			if int(idx) >= b.Len() {
				return nil, errors.Errorf("index %d out of range of %d vertices", idx, b.Len())
			}
		}

		fresh := 0
		for k, idx := range tri {
			if _, ok := remap[idx]; ok {
				continue
			}
			dup := false
			for _, prev := range tri[:k] {
				dup = dup || prev == idx
			}
			if !dup {
				fresh++
			}
		}
		if len(picked)+fresh > limit {
			flush()
		}

		for _, idx := range tri {
			l, ok := remap[idx]
			if !ok {
				l = uint32(len(picked))
				remap[idx] = l
				picked = append(picked, idx)
			}
			local = append(local, l)
		}
	}
	flush()

	return chunks, nil
}
