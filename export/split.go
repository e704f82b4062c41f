package export

import (
	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/vertex"
)

// splitGeometry cuts g into pieces addressable with 16 bit indices. Each
// piece keeps the shader, bone ids and layout of g and gets its own box.
func splitGeometry(g *drawable.Geometry, limit int) ([]*drawable.Geometry, error) {
	if g.Vertices == nil || g.Indices == nil {
		return nil, errors.Wrap(vertex.ErrNilBuffer, "Failed to split Geometry by vertex count")
	}
	if g.Vertices.Len() <= limit {
		return []*drawable.Geometry{g}, nil
	}

	chunks, err := vertex.Split(g.Vertices, g.Indices, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*drawable.Geometry, len(chunks))
	for i, ch := range chunks {
		ng := &drawable.Geometry{
			ShaderIndex:    g.ShaderIndex,
			BoneIDs:        g.BoneIDs,
			Vertices:       ch.Vertices,
			Indices:        ch.Indices,
			VertexLayout:   g.VertexLayout,
			ColourSemantic: g.ColourSemantic,
			BoneCount:      g.BoneCount,
		}
		ng.UpdateBounds()
		out[i] = ng
	}
	return out, nil
}

func splitModels(models []*drawable.Model, limit int) error {
	for _, m := range models {
		geoms := make([]*drawable.Geometry, 0, len(m.Geometries))
		for _, g := range m.Geometries {
			parts, err := splitGeometry(g, limit)
			if err != nil {
				return err
			}
			geoms = append(geoms, parts...)
		}
		m.Geometries = geoms
	}
	return nil
}
