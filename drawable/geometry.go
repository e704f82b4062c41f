package drawable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/vertex"
)

type Geometry struct {
	ShaderIndex    int
	BoundingBoxMin mgl32.Vec3
	BoundingBoxMax mgl32.Vec3
	BoneIDs        []int

	Vertices *vertex.Buffer
	Indices  []uint32

	// rdr only
	VertexLayout   *VertexLayout
	ColourSemantic int
	BoneCount      int
}

// VertexLayout is the compact semantic description rdr stores next to
// non interleaved buffers.
type VertexLayout struct {
	Semantics      string
	Formats        string
	NonInterleaved bool
}

func (g *Geometry) VerticesCount() int {
	return g.Vertices.Len()
}

// UpdateBounds recomputes the box from the vertex positions.
func (g *Geometry) UpdateBounds() {
	g.BoundingBoxMin, g.BoundingBoxMax = g.Vertices.Bounds()
}
