package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/scene"
)

// textureDir is the folder embedded textures are copied to, named after the
// output file.
func textureDir(outPath string) string {
	base := filepath.Base(outPath)
	return filepath.Join(filepath.Dir(outPath), strings.TrimSuffix(base, filepath.Ext(base)))
}

// writeEmbeddedTextures copies every embedded image next to the output file.
// Missing sources are skipped with a warning.
func writeEmbeddedTextures(ctx *Context, materials []*scene.Material, outPath string) error {
	dir := textureDir(outPath)
	for _, node := range scene.EmbeddedImageNodes(materials) {
		src := node.ImagePath
		st, err := os.Stat(src)
		if err != nil || st.IsDir() {
			ctx.Log.Warnf("Texture path '%s' for %s not found! Skipping texture...", src, node.Name)
			continue
		}
		if err := os.MkdirAll(dir, 0777); err != nil {
			return errors.Wrapf(err, "creating texture folder %s", dir)
		}
		dst := filepath.Join(dir, filepath.Base(src))
		if dstSt, err := os.Stat(dst); err == nil && os.SameFile(st, dstSt) {
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return errors.Wrapf(err, "copying texture %s", src)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
