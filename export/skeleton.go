package export

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/utils"
)

type boneNode struct {
	src      *scene.Bone
	parent   *boneNode
	children []*boneNode
	index    int
}

// boneTree owns the hierarchy; flat indices are a depth first pre-order walk
// with roots and children kept in input order.
type boneTree struct {
	roots []*boneNode
	flat  []*boneNode
}

func newBoneTree(arm *scene.Armature) *boneTree {
	nodes := make([]*boneNode, len(arm.Bones))
	for i := range arm.Bones {
		nodes[i] = &boneNode{src: &arm.Bones[i]}
	}

	t := &boneTree{}
	for i, n := range nodes {
		if p := arm.Bones[i].Parent; p >= 0 && p < len(nodes) && p != i {
			n.parent = nodes[p]
			nodes[p].children = append(nodes[p].children, n)
		} else {
			t.roots = append(t.roots, n)
		}
	}

	var walk func(n *boneNode)
	walk = func(n *boneNode) {
		n.index = len(t.flat)
		t.flat = append(t.flat, n)
		for _, c := range n.children {
			walk(c)
		}
	}
	for _, r := range t.roots {
		walk(r)
	}
	return t
}

func (n *boneNode) siblingIndex() int {
	if n.parent == nil {
		return -1
	}
	siblings := n.parent.children
	for i, s := range siblings {
		if s == n && i+1 < len(siblings) {
			return siblings[i+1].index
		}
	}
	return -1
}

func (n *boneNode) parentIndex() int {
	if n.parent == nil {
		return -1
	}
	return n.parent.index
}

func createSkeleton(ctx *Context, arm *scene.Armature) (*drawable.Skeleton, *boneTree) {
	if arm == nil || len(arm.Bones) == 0 {
		return nil, nil
	}
	tree := newBoneTree(arm)

	anchor := mgl32.Ident4()
	if ctx.Settings.ApplyTransforms {
		anchor = arm.World
		anchor.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	}

	skel := &drawable.Skeleton{
		Bones: make([]*drawable.Bone, len(tree.flat)),
	}
	for i, n := range tree.flat {
		b := &drawable.Bone{
			Name:         n.src.Name,
			Tag:          n.src.Tag,
			Index:        i,
			ParentIndex:  n.parentIndex(),
			SiblingIndex: n.siblingIndex(),
			Flags:        boneFlags(n),
		}
		setBoneTransforms(b, n, anchor)
		b.TransformUnk = ctx.Schema.TransformUnk(b.Rotation)
		skel.Bones[i] = b
	}

	if ctx.Schema.HasLastSiblingIndex() {
		// pre-order guarantees parents are filled before children
		for i, n := range tree.flat {
			skel.Bones[i].LastSiblingIndex = lastSiblingIndex(skel, n, len(tree.flat))
		}
	}

	skel.Unknown50, skel.Unknown54, skel.Unknown58 = skeletonHashes(skel.Bones)
	ctx.Schema.FinishSkeleton(skel, arm)
	return skel, tree
}

func lastSiblingIndex(skel *drawable.Skeleton, n *boneNode, count int) int {
	b := skel.Bones[n.index]
	if b.SiblingIndex != -1 {
		return b.SiblingIndex
	}
	if n.parent == nil {
		return count
	}
	if ps := n.parent.siblingIndex(); ps != -1 {
		return ps
	}
	return skel.Bones[n.parent.index].LastSiblingIndex
}

func boneFlags(n *boneNode) []string {
	flags := make([]string, 0, len(n.src.Flags)+2)
	for _, f := range n.src.Flags {
		if f != "" {
			flags = append(flags, f)
		}
	}
	if n.src.RotationLimit != nil {
		flags = append(flags, "LimitRotation")
	}
	if len(n.children) > 0 {
		flags = append(flags, "Unk0")
	}
	return flags
}

func setBoneTransforms(b *drawable.Bone, n *boneNode, anchor mgl32.Mat4) {
	local := n.src.MatrixLocal
	rel := local
	if n.parent != nil {
		rel = n.parent.src.MatrixLocal.Inv().Mul4(local)
	}
	head := local.Col(3).Vec3().Vec4(1)
	if n.parent != nil {
		b.Translation = anchor.Mul4(n.parent.src.MatrixLocal.Inv()).Mul4x1(head).Vec3()
	} else {
		b.Translation = anchor.Mul4x1(head).Vec3()
	}
	_, b.Rotation, b.Scale = utils.DecomposeMat4(rel)
}

// createJoints collects bone limits in skeleton order.
func createJoints(tree *boneTree) *drawable.Joints {
	j := &drawable.Joints{}
	for _, n := range tree.flat {
		if l := n.src.RotationLimit; l != nil {
			j.RotationLimits = append(j.RotationLimits, &drawable.BoneLimit{BoneID: n.src.Tag, Min: l.Min, Max: l.Max})
		}
		if l := n.src.TranslationLimit; l != nil {
			j.TranslationLimits = append(j.TranslationLimits, &drawable.BoneLimit{BoneID: n.src.Tag, Min: l.Min, Max: l.Max})
		}
	}
	return j
}

func (t *boneTree) indexByName() map[string]int {
	m := make(map[string]int, len(t.flat))
	for i, n := range t.flat {
		m[n.src.Name] = i
	}
	return m
}
