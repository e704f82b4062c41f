package export

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/drawable_exporter/drawable"
	"github.com/mogaika/drawable_exporter/scene"
)

func createLights(ctx *Context, lights []*scene.Light, skel *drawable.Skeleton) []*drawable.Light {
	out := make([]*drawable.Light, 0, len(lights))
	for _, l := range lights {
		dl := &drawable.Light{
			Kind:            string(l.Kind),
			Position:        l.Position,
			Direction:       normalizedOr(l.Direction, mgl32.Vec3{0, 0, -1}),
			Tangent:         normalizedOr(l.Tangent, mgl32.Vec3{0, 1, 0}),
			Colour:          l.Color,
			Intensity:       l.Intensity,
			Falloff:         l.Falloff,
			FalloffExponent: l.FalloffExponent,
			Flags:           l.Flags,
			TimeFlags:       l.TimeFlags,
			Flashiness:      l.Flashiness,
		}
		switch l.Kind {
		case scene.LightSpot:
			dl.ConeInnerAngle = l.ConeInnerAngle
			dl.ConeOuterAngle = l.ConeOuterAngle
		case scene.LightCapsule:
			dl.Extent = mgl32.Vec3{l.CapsuleExtent, l.CapsuleExtent, l.CapsuleExtent}
		case scene.LightPoint:
		default:
			ctx.Log.Warnf("Light '%s' has unknown type '%s', exporting as point", l.Name, l.Kind)
			dl.Kind = string(scene.LightPoint)
		}
		if l.BoneName != "" {
			if tag, ok := boneTag(skel, l.BoneName); ok {
				dl.BoneID = tag
			} else {
				ctx.Log.Warnf("Light '%s' is attached to missing bone '%s'", l.Name, l.BoneName)
			}
		}
		out = append(out, dl)
	}
	return out
}

func boneTag(skel *drawable.Skeleton, name string) (uint16, bool) {
	if skel == nil {
		return 0, false
	}
	for _, b := range skel.Bones {
		if b.Name == name {
			return b.Tag, true
		}
	}
	return 0, false
}

func normalizedOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return fallback
	}
	return v.Normalize()
}
