package export

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
)

// lodSlot maps scene lod levels onto drawable model lists. Very high lods
// are editor only.
func lodSlot(l scene.LodLevel) (drawable.LodLevel, bool) {
	switch l {
	case scene.LodHigh:
		return drawable.LodHigh, true
	case scene.LodMedium:
		return drawable.LodMedium, true
	case scene.LodLow:
		return drawable.LodLow, true
	case scene.LodVeryLow:
		return drawable.LodVeryLow, true
	}
	return 0, false
}

func modelVertexGroups(obj *scene.ModelObject, mesh *scene.Mesh) []string {
	if len(obj.VertexGroups) != 0 {
		return obj.VertexGroups
	}
	if mesh != nil {
		return mesh.VertexGroups
	}
	return nil
}

func firstMesh(obj *scene.ModelObject) *scene.Mesh {
	for _, l := range obj.Lods {
		if l.Mesh != nil {
			return l.Mesh
		}
	}
	return nil
}

// sortModelsByBone orders models by the lowest bone any of their vertex
// groups is bound to, which is the render order of skinned parts.
func sortModelsByBone(models []*scene.ModelObject, boneIndex map[string]int) []*scene.ModelObject {
	lowest := func(obj *scene.ModelObject) int {
		best := -1
		for _, name := range modelVertexGroups(obj, firstMesh(obj)) {
			if bi, ok := boneIndex[name]; ok && (best == -1 || bi < best) {
				best = bi
			}
		}
		if best == -1 {
			return 0
		}
		return best
	}

	sorted := make([]*scene.ModelObject, len(models))
	copy(sorted, models)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lowest(sorted[i]) < lowest(sorted[j])
	})
	return sorted
}

func createModel(ctx *Context, obj *scene.ModelObject, lod *scene.Lod, materials []*scene.Material, skel *drawable.Skeleton, tree *boneTree) (*drawable.Model, error) {
	groups := modelVertexGroups(obj, lod.Mesh)
	m := &drawable.Model{
		RenderMask: uint8(lod.RenderMask),
		Flags:      uint8(lod.Flags),
		HasSkin:    skel != nil && len(groups) > 0,
	}
	if m.HasSkin {
		m.Flags = 1
		m.MatrixCount = len(skel.Bones)
	}

	mesh := lod.Mesh
	if obj.Transform != nil {
		mesh = mesh.Transformed(*obj.Transform)
	}

	var skin *skinning
	var boneIndex map[string]int
	if tree != nil {
		boneIndex = tree.indexByName()
	}
	if m.HasSkin {
		skin = newSkinning(groups, boneIndex)
	}

	var err error
	if m.Geometries, err = createGeometries(ctx, mesh, materials, skel, skin); err != nil {
		return nil, errors.Wrapf(err, "model %s", obj.Name)
	}

	var tags []uint16
	if skin != nil {
		tags = skin.boneTags(skel)
	}
	ctx.Schema.FinishModel(m, tags)

	if obj.ParentBone != "" {
		if bi, ok := boneIndex[obj.ParentBone]; ok {
			m.BoneIndex = bi
		}
	}
	return m, nil
}

func createModels(ctx *Context, d *drawable.Drawable, obj *scene.DrawableObject, tree *boneTree) error {
	models := obj.Models
	if tree != nil {
		models = sortModelsByBone(models, tree.indexByName())
	}

	for _, mo := range models {
		for _, lod := range mo.Lods {
			slot, ok := lodSlot(lod.Level)
			if !ok || lod.Mesh == nil {
				continue
			}
			m, err := createModel(ctx, mo, lod, obj.Materials, d.Skeleton, tree)
			if err != nil {
				return err
			}
			if len(m.Geometries) == 0 {
				continue
			}
			d.Models[slot] = append(d.Models[slot], m)
		}
	}
	return nil
}
