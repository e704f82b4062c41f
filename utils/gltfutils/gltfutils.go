package gltfutils

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// AddRootNodes puts every node that is nobody's child into the default scene.
func AddRootNodes(doc *gltf.Document) {
	isChild := make(map[uint32]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	if len(doc.Scenes) == 0 {
		doc.Scenes = append(doc.Scenes, &gltf.Scene{})
		doc.Scene = gltf.Index(0)
	}
	for iNode := range doc.Nodes {
		if !isChild[uint32(iNode)] {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(iNode))
		}
	}
}

func Encode(w io.Writer, doc *gltf.Document, binary bool) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	return encoder.Encode(doc)
}

// Save writes doc to path, as glb when the extension says so.
func Save(path string, doc *gltf.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	binary := strings.EqualFold(filepath.Ext(path), ".glb")
	if err := Encode(f, doc, binary); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return f.Close()
}
