package export

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/vertex"
)

// skinning maps mesh vertex groups onto skeleton bones. groups keeps the
// vertex group order of the mapped entries.
type skinning struct {
	boneByGroup map[int]int
	groups      []int
}

func newSkinning(groups []string, boneIndex map[string]int) *skinning {
	s := &skinning{boneByGroup: make(map[int]int)}
	for gi, name := range groups {
		if bi, ok := boneIndex[name]; ok {
			s.boneByGroup[gi] = bi
			s.groups = append(s.groups, gi)
		}
	}
	return s
}

// boneTags lists the tag of every mapped bone in vertex group order.
func (s *skinning) boneTags(skel *drawable.Skeleton) []uint16 {
	tags := make([]uint16, len(s.groups))
	for i, g := range s.groups {
		tags[i] = skel.Bones[s.boneByGroup[g]].Tag
	}
	return tags
}

// checkRange fails when a mapped bone index does not fit the blend index
// component type.
func (s *skinning) checkRange(skel *drawable.Skeleton, t vertex.ComponentType) error {
	for _, g := range s.groups {
		if bi := s.boneByGroup[g]; uint32(bi) > t.MaxUint() {
			name := ""
			if skel != nil && bi < len(skel.Bones) {
				name = skel.Bones[bi].Name
			}
			return errors.Errorf("bone %q index %d does not fit %v blend indices", name, bi, t)
		}
	}
	return nil
}

// loopsByMaterial returns the triangle corners of every drawable material
// used by the mesh, keyed by drawable material index.
func loopsByMaterial(ctx *Context, mesh *scene.Mesh, materials []*scene.Material) map[int][]uint32 {
	matIndex := make(map[string]int, len(materials))
	for i, m := range materials {
		if _, dup := matIndex[m.Name]; !dup {
			matIndex[m.Name] = i
		}
	}

	slotToShader := make([]int, len(mesh.Materials))
	for slot, name := range mesh.Materials {
		if idx, ok := matIndex[name]; ok {
			slotToShader[slot] = idx
		} else {
			slotToShader[slot] = -1
		}
	}

	byMat := make(map[int][]uint32)
	warned := false
	for _, tri := range mesh.Triangles {
		slot := tri.Material
		if slot < 0 || slot >= len(slotToShader) {
			if !warned {
				ctx.Log.Warnf("Mesh '%s' has triangles with material index %d out of range, using first material", mesh.Name, slot)
				warned = true
			}
			slot = 0
		}
		shader := slotToShader[slot]
		if shader < 0 {
			continue
		}
		byMat[shader] = append(byMat[shader], tri.Loops[0], tri.Loops[1], tri.Loops[2])
	}
	return byMat
}

// createGeometries builds one geometry per drawable material used by mesh.
// skin is nil for unskinned models.
func createGeometries(ctx *Context, mesh *scene.Mesh, materials []*scene.Material, skel *drawable.Skeleton, skin *skinning) ([]*drawable.Geometry, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	if len(mesh.Loops) == 0 {
		ctx.Log.Warnf("Drawable Model '%s' has no Geometry! Skipping...", mesh.Name)
		return nil, nil
	}
	if len(mesh.Materials) == 0 {
		ctx.Log.Warnf("Could not create geometries for Drawable Model '%s': Mesh has no materials!", mesh.Name)
		return nil, nil
	}

	format := ctx.Schema.VertexFormat()
	var boneByGroup map[int]int
	if skin != nil {
		if err := skin.checkRange(skel, format.BlendIndices); err != nil {
			return nil, errors.Wrapf(err, "mesh %s", mesh.Name)
		}
		boneByGroup = skin.boneByGroup
	}
	total := vertex.NewBuilder(mesh, boneByGroup).Build(format)
	if total == nil {
		return nil, nil
	}

	byMat := loopsByMaterial(ctx, mesh, materials)
	geoms := make([]*drawable.Geometry, 0, len(byMat))
	for matIndex, loops := range byMat {
		mat := materials[matIndex]
		def := ctx.Schema.FindShader(ctx.Shaders, mat)

		buf := ctx.Schema.StripAttributes(total.Subset(loops), def)
		buf, indices := vertex.Dedupe(buf)

		g := &drawable.Geometry{
			ShaderIndex: matIndex,
			Vertices:    buf,
			Indices:     indices,
		}
		g.UpdateBounds()
		if skel != nil && buf.Layout.Has("BlendWeights") {
			g.BoneIDs = make([]int, len(skel.Bones))
			for i := range g.BoneIDs {
				g.BoneIDs[i] = i
			}
		}
		boneCount := 0
		if skin != nil {
			boneCount = len(skin.boneByGroup)
		}
		ctx.Schema.DecorateGeometry(g, mat, boneCount)
		geoms = append(geoms, g)
	}

	sortGeometries(geoms)
	return geoms, nil
}

func sortGeometries(geoms []*drawable.Geometry) {
	sort.SliceStable(geoms, func(i, j int) bool {
		return geoms[i].ShaderIndex < geoms[j].ShaderIndex
	})
}
