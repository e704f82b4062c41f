package vertex

// Dedupe collapses bitwise identical records. Unique records keep first seen
// order; the returned indices map every input record to its unique slot.
func Dedupe(b *Buffer) (*Buffer, []uint32) {
	n := b.Len()
	stride := b.Stride()
	indices := make([]uint32, n)
	if stride == 0 {
		return &Buffer{Layout: b.Layout}, indices
	}

	seen := make(map[string]uint32, n)
	data := make([]byte, 0, len(b.Data))
	for i := 0; i < n; i++ {
		rec := b.Data[i*stride : (i+1)*stride]
		if idx, ok := seen[string(rec)]; ok {
			indices[i] = idx
			continue
		}
		idx := uint32(len(data) / stride)
		seen[string(rec)] = idx
		data = append(data, rec...)
		indices[i] = idx
	}

	return &Buffer{Layout: b.Layout, Data: data}, indices
}
