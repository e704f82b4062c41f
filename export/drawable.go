package export

import (
	"bytes"
	"os"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/utils"
	"github.com/mogaika/drawable_exporter/vertex"
)

var numberSuffix = regexp.MustCompile(`\.\d+$`)

// drawableName lower cases the object name and drops an editor duplicate
// suffix such as ".001".
func drawableName(name string) string {
	return numberSuffix.ReplaceAllString(strings.ToLower(name), "")
}

// CreateDrawable assembles the drawable for obj. A drawable without
// materials is returned with only its shader group and a warning.
func CreateDrawable(ctx *Context, obj *scene.DrawableObject) (*drawable.Drawable, error) {
	d := &drawable.Drawable{
		Name: drawableName(obj.Name),
		LodDistances: [drawable.LodCount]float32{
			obj.LodDistHigh, obj.LodDistMedium, obj.LodDistLow, obj.LodDistVeryLow,
		},
	}

	sg, err := createShaderGroup(ctx, obj.Materials)
	if err != nil {
		return nil, errors.Wrapf(err, "drawable %s shader group", d.Name)
	}
	d.ShaderGroup = sg
	if len(sg.Shaders) == 0 {
		ctx.Log.Warnf("%s has no materials! Aborting...", d.Name)
		return d, nil
	}

	var tree *boneTree
	if obj.Armature != nil {
		if err := obj.Armature.Validate(); err != nil {
			return nil, errors.Wrapf(err, "drawable %s armature", d.Name)
		}
		d.Skeleton, tree = createSkeleton(ctx, obj.Armature)
		if tree != nil && ctx.Schema.HasJoints() {
			d.Joints = createJoints(tree)
		}
	}

	if err := createModels(ctx, d, obj, tree); err != nil {
		return nil, errors.Wrapf(err, "drawable %s", d.Name)
	}

	for lod := range d.Models {
		if ctx.Settings.JoinSkinnedModels {
			if d.Models[lod], err = joinSkinnedModels(ctx, d.Models[lod]); err != nil {
				return nil, errors.Wrapf(err, "drawable %s", d.Name)
			}
		}
		if ctx.Settings.SplitByVertexCount {
			if err := splitModels(d.Models[lod], vertex.MaxIndex); err != nil {
				return nil, errors.Wrapf(err, "drawable %s", d.Name)
			}
		}
	}

	if ctx.Schema.HasLights() {
		d.Lights = createLights(ctx, obj.Lights, d.Skeleton)
	}

	setFlags(d)
	setExtents(d)

	if err := createEmbeddedBounds(ctx, d, obj.Bounds); err != nil {
		return nil, errors.Wrapf(err, "drawable %s bounds", d.Name)
	}
	return d, nil
}

func setFlags(d *drawable.Drawable) {
	for lod, models := range d.Models {
		d.Flags[lod] = uint32(len(models))
	}
}

// setExtents derives the drawable box and sphere from high lod geometry.
func setExtents(d *drawable.Drawable) {
	var mins, maxs []mgl32.Vec3
	for _, m := range d.Models[drawable.LodHigh] {
		for _, g := range m.Geometries {
			mins = append(mins, g.BoundingBoxMin)
			maxs = append(maxs, g.BoundingBoxMax)
		}
	}
	d.BoundingBoxMin, d.BoundingBoxMax = utils.BoxUnion(mins, maxs)
	d.BoundingSphereCenter = utils.BoxCenter(d.BoundingBoxMin, d.BoundingBoxMax)
	d.BoundingSphereRadius = utils.SphereRadius(d.BoundingBoxMax, d.BoundingSphereCenter)
}

func createEmbeddedBounds(ctx *Context, d *drawable.Drawable, bounds []*scene.BoundObject) error {
	if ctx.Bounds == nil {
		return nil
	}
	for _, obj := range bounds {
		b, err := ctx.Bounds.Build(obj)
		if err != nil {
			return err
		}
		if !b.IsComposite() && !utils.IsIdentity(b.CompositeTransform) {
			ctx.Log.Warnf("Embedded bound '%s' has transforms (location, rotation, scale) but is not parented to a Bound Composite. "+
				"Parent the collision to a Bound Composite in order for the transforms to work in-game.", obj.Name)
		}
		d.Bounds = append(d.Bounds, b)
	}
	return nil
}

// Export assembles obj and writes it to path. Nothing is written when
// assembly or serialization fails. Embedded textures are copied afterwards.
func Export(ctx *Context, obj *scene.DrawableObject, path string) (*drawable.Drawable, error) {
	d, err := CreateDrawable(ctx, obj)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ctx.Schema.WriteXML(&buf, d); err != nil {
		return nil, errors.Wrapf(err, "serializing %s", d.Name)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		return nil, errors.Wrapf(err, "writing %s", path)
	}
	ctx.Log.Infof("Exported drawable '%s' to %s (%d models, %d shaders)", d.Name, path, d.ModelsCount(), len(d.ShaderGroup.Shaders))

	if err := writeEmbeddedTextures(ctx, obj.Materials, path); err != nil {
		return d, err
	}
	return d, nil
}

// ExportBinary writes the binary geometry container for d.
func ExportBinary(ctx *Context, d *drawable.Drawable, path string) error {
	var buf bytes.Buffer
	if err := ctx.Schema.WriteBinary(&buf, d, ctx.Settings.Encoding); err != nil {
		return errors.Wrapf(err, "serializing %s", d.Name)
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0666), "writing %s", path)
}
