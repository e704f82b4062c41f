// Package gltfpreview converts an assembled drawable into a glTF document so
// the export can be inspected in any viewer.
package gltfpreview

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/utils/gltfutils"
	"github.com/mogaika/drawable_exporter/vertex"
)

type exporter struct {
	doc       *gltf.Document
	d         *drawable.Drawable
	boneNodes []uint32
	skin      *uint32
}

// Document builds the scene for one lod: a root node, the bone hierarchy and
// one node per model.
func Document(d *drawable.Drawable, lod drawable.LodLevel) (*gltf.Document, error) {
	e := &exporter{doc: gltf.NewDocument(), d: d}
	e.doc.Scenes[0].Nodes = nil

	root := &gltf.Node{Name: d.Name}
	e.doc.Nodes = append(e.doc.Nodes, root)

	e.materials()
	if d.Skeleton != nil {
		root.Children = append(root.Children, e.bones()...)
	}
	for i, m := range d.Models[lod] {
		node, err := e.model(m, fmt.Sprintf("%s_%s_%d", d.Name, lod, i))
		if err != nil {
			return nil, errors.Wrapf(err, "model %d", i)
		}
		if !m.HasSkin && e.boneNodes != nil && m.BoneIndex > 0 && m.BoneIndex < len(e.boneNodes) {
			parent := e.doc.Nodes[e.boneNodes[m.BoneIndex]]
			parent.Children = append(parent.Children, node)
		} else {
			root.Children = append(root.Children, node)
		}
	}

	gltfutils.AddRootNodes(e.doc)
	return e.doc, nil
}

// Write encodes the high lod of d, as glb when binary is set.
func Write(w io.Writer, d *drawable.Drawable, binary bool) error {
	doc, err := Document(d, drawable.LodHigh)
	if err != nil {
		return err
	}
	return gltfutils.Encode(w, doc, binary)
}

// Save writes the high lod of d to path, glb or gltf by extension.
func Save(path string, d *drawable.Drawable) error {
	doc, err := Document(d, drawable.LodHigh)
	if err != nil {
		return err
	}
	return gltfutils.Save(path, doc)
}

func (e *exporter) materials() {
	if e.d.ShaderGroup == nil {
		return
	}
	for _, s := range e.d.ShaderGroup.Shaders {
		e.doc.Materials = append(e.doc.Materials, &gltf.Material{
			Name:        s.Name,
			DoubleSided: true,
		})
	}
}

// bones adds one node per bone and the skin binding them. Returns the root
// bone nodes.
func (e *exporter) bones() []uint32 {
	bones := e.d.Skeleton.Bones
	e.boneNodes = make([]uint32, len(bones))
	world := make([]mgl32.Mat4, len(bones))
	inverseBind := make([][4][4]float32, len(bones))

	var roots []uint32
	for i, b := range bones {
		node := &gltf.Node{
			Name:        b.Name,
			Translation: b.Translation,
			Rotation:    b.Rotation.V.Vec4(b.Rotation.W),
			Scale:       b.Scale,
		}
		e.boneNodes[i] = uint32(len(e.doc.Nodes))
		e.doc.Nodes = append(e.doc.Nodes, node)

		local := mgl32.Translate3D(b.Translation[0], b.Translation[1], b.Translation[2]).
			Mul4(b.Rotation.Mat4()).
			Mul4(mgl32.Scale3D(b.Scale[0], b.Scale[1], b.Scale[2]))
		// parents always precede their children
		if p := b.ParentIndex; p >= 0 && p < i {
			world[i] = world[p].Mul4(local)
			parent := e.doc.Nodes[e.boneNodes[p]]
			parent.Children = append(parent.Children, e.boneNodes[i])
		} else {
			world[i] = local
			roots = append(roots, e.boneNodes[i])
		}

		inv := world[i].Inv()
		for c := 0; c < 4; c++ {
			inverseBind[i][c] = inv.Col(c)
		}
	}

	e.doc.Skins = append(e.doc.Skins, &gltf.Skin{
		Name:                e.d.Name + "_skin",
		Joints:              e.boneNodes,
		InverseBindMatrices: gltf.Index(modeler.WriteAccessor(e.doc, gltf.TargetNone, inverseBind)),
	})
	e.skin = gltf.Index(uint32(len(e.doc.Skins) - 1))
	return roots
}

func (e *exporter) model(m *drawable.Model, name string) (uint32, error) {
	mesh := &gltf.Mesh{Name: name}
	skinned := false
	for i, g := range m.Geometries {
		p, hasJoints, err := e.primitive(g)
		if err != nil {
			return 0, errors.Wrapf(err, "geometry %d", i)
		}
		skinned = skinned || hasJoints
		mesh.Primitives = append(mesh.Primitives, p)
	}
	e.doc.Meshes = append(e.doc.Meshes, mesh)

	node := &gltf.Node{
		Name: name,
		Mesh: gltf.Index(uint32(len(e.doc.Meshes) - 1)),
	}
	if skinned && m.HasSkin && e.skin != nil {
		node.Skin = e.skin
	}
	e.doc.Nodes = append(e.doc.Nodes, node)
	return uint32(len(e.doc.Nodes) - 1), nil
}

func (e *exporter) primitive(g *drawable.Geometry) (*gltf.Primitive, bool, error) {
	b := g.Vertices
	if b == nil || g.Indices == nil {
		return nil, false, vertex.ErrNilBuffer
	}
	count := b.Len()

	positions := make([][3]float32, count)
	for i := range positions {
		positions[i] = b.Position(i)
	}
	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(e.doc, positions),
	}

	if b.Layout.Has("Normal") {
		normals := make([][3]float32, count)
		for i := range normals {
			n := mgl32.Vec3{}
			copy(n[:], b.Floats(i, "Normal"))
			if n.Len() > 0.5 {
				n = n.Normalize()
			}
			normals[i] = n
		}
		attributes["NORMAL"] = modeler.WriteNormal(e.doc, normals)
	}

	for layer := 0; layer < vertex.MaxTexCoords; layer++ {
		name := vertex.TexCoordName(layer)
		if !b.Layout.Has(name) {
			continue
		}
		uvs := make([][2]float32, count)
		for i := range uvs {
			copy(uvs[i][:], b.Floats(i, name))
		}
		attributes[fmt.Sprintf("TEXCOORD_%d", layer)] = modeler.WriteTextureCoord(e.doc, uvs)
	}

	for layer := 0; layer < vertex.MaxColours; layer++ {
		name := vertex.ColourName(layer)
		if !b.Layout.Has(name) {
			continue
		}
		colors := make([][4]uint8, count)
		for i := range colors {
			for c, v := range b.Uints(i, name) {
				colors[i][c] = uint8(v)
			}
		}
		attributes[fmt.Sprintf("COLOR_%d", layer)] = modeler.WriteColor(e.doc, colors)
	}

	hasJoints := b.Layout.Has("BlendIndices") && b.Layout.Has("BlendWeights")
	if hasJoints {
		joints := make([][4]uint16, count)
		weights := make([][4]uint8, count)
		for i := 0; i < count; i++ {
			w := b.Uints(i, "BlendWeights")
			for c, j := range b.Uints(i, "BlendIndices") {
				weights[i][c] = uint8(w[c])
				// unused slots must point at a valid joint
				if w[c] != 0 {
					joints[i][c] = uint16(j)
				}
			}
		}
		attributes["JOINTS_0"] = modeler.WriteJoints(e.doc, joints)
		attributes["WEIGHTS_0"] = modeler.WriteWeights(e.doc, weights)
	}

	p := &gltf.Primitive{
		Indices:    gltf.Index(modeler.WriteIndices(e.doc, g.Indices)),
		Attributes: attributes,
	}
	if e.d.ShaderGroup != nil && g.ShaderIndex >= 0 && g.ShaderIndex < len(e.doc.Materials) {
		p.Material = gltf.Index(uint32(g.ShaderIndex))
	}
	return p, hasJoints, nil
}
