package export

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/utils"
	"github.com/mogaika/drawable_exporter/vertex"
)

// joinSkinnedModels merges every skinned model of one lod into a single model
// placed first; the engine expects one skinned model per lod. Geometries with
// the same shader are concatenated.
func joinSkinnedModels(ctx *Context, models []*drawable.Model) ([]*drawable.Model, error) {
	var skinned, rest []*drawable.Model
	for _, m := range models {
		if m.HasSkin {
			skinned = append(skinned, m)
		} else {
			rest = append(rest, m)
		}
	}
	if len(skinned) <= 1 {
		return models, nil
	}

	first := skinned[0]
	joined := &drawable.Model{
		HasSkin:     true,
		RenderMask:  first.RenderMask,
		MatrixCount: first.MatrixCount,
		Flags:       first.Flags,
		BoneIndex:   first.BoneIndex,
	}

	byShader := make(map[int][]*drawable.Geometry)
	var order []int
	var tags []uint16
	for _, m := range skinned {
		for _, g := range m.Geometries {
			if _, ok := byShader[g.ShaderIndex]; !ok {
				order = append(order, g.ShaderIndex)
			}
			byShader[g.ShaderIndex] = append(byShader[g.ShaderIndex], g)
		}
		tags = appendMissingTags(tags, m.BoneMapping)
	}

	for _, shader := range order {
		g, err := joinGeometries(ctx, byShader[shader], shader)
		if err != nil {
			return nil, errors.Wrapf(err, "joining shader %d geometries", shader)
		}
		joined.Geometries = append(joined.Geometries, g)
	}
	sortGeometries(joined.Geometries)
	ctx.Schema.FinishModel(joined, tags)

	return append([]*drawable.Model{joined}, rest...), nil
}

func appendMissingTags(tags, add []uint16) []uint16 {
	for _, t := range add {
		found := false
		for _, have := range tags {
			found = found || have == t
		}
		if !found {
			tags = append(tags, t)
		}
	}
	return tags
}

func joinGeometries(ctx *Context, geoms []*drawable.Geometry, shader int) (*drawable.Geometry, error) {
	buffers := make([]*vertex.Buffer, 0, len(geoms))
	indices := make([][]uint32, 0, len(geoms))
	mins := make([]mgl32.Vec3, 0, len(geoms))
	maxs := make([]mgl32.Vec3, 0, len(geoms))
	boneSet := make(map[int]bool)
	boneCount := 0
	for _, g := range geoms {
		mins = append(mins, g.BoundingBoxMin)
		maxs = append(maxs, g.BoundingBoxMax)
		for _, id := range g.BoneIDs {
			boneSet[id] = true
		}
		if g.BoneCount > boneCount {
			boneCount = g.BoneCount
		}
		if g.Vertices == nil || g.Indices == nil {
			continue
		}
		buffers = append(buffers, g.Vertices)
		indices = append(indices, g.Indices)
	}

	buf, idx, err := vertex.Join(buffers, indices)
	if err != nil {
		return nil, err
	}

	out := &drawable.Geometry{
		ShaderIndex:    shader,
		Vertices:       buf,
		Indices:        idx,
		ColourSemantic: geoms[0].ColourSemantic,
		BoneCount:      boneCount,
		VertexLayout:   ctx.Schema.DescribeLayout(buf.Layout),
	}
	out.BoundingBoxMin, out.BoundingBoxMax = utils.BoxUnion(mins, maxs)
	for id := range boneSet {
		out.BoneIDs = append(out.BoneIDs, id)
	}
	sort.Ints(out.BoneIDs)
	return out, nil
}
