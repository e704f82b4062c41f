package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mogaika/drawable_exporter/config"
	"github.com/mogaika/drawable_exporter/scene"
	"github.com/mogaika/drawable_exporter/utils"
)

const defaultMargin = 0.04

// Bound is an embedded collision record. Capsules and cylinders are aligned
// to the Y axis.
type Bound struct {
	Name     string
	Kind     scene.BoundKind
	Material Material

	BoxMin       mgl32.Vec3
	BoxMax       mgl32.Vec3
	BoxCenter    mgl32.Vec3
	SphereCenter mgl32.Vec3
	SphereRadius float32
	Margin       float32

	Volume  float32
	Mass    float32
	Inertia mgl32.Vec3

	// Placement inside the parent composite.
	CompositeTransform mgl32.Mat4
	Children           []*Bound
}

func (b *Bound) IsComposite() bool {
	return b.Kind == scene.BoundComposite
}

// Builder turns scene bound objects into collision records.
type Builder struct {
	Game                 config.Game
	AutoCalculateVolume  bool
	AutoCalculateInertia bool
	Log                  *zap.SugaredLogger
}

func NewBuilder(s *config.Settings, log *zap.SugaredLogger) *Builder {
	return &Builder{
		Game:                 s.Game,
		AutoCalculateVolume:  s.AutoCalculateVolume,
		AutoCalculateInertia: s.AutoCalculateInertia,
		Log:                  log,
	}
}

func (cb *Builder) Build(obj *scene.BoundObject) (*Bound, error) {
	b := &Bound{
		Name:               obj.Name,
		Kind:               obj.Kind,
		Material:           cb.material(obj),
		CompositeTransform: mgl32.Ident4(),
		Margin:             defaultMargin,
	}
	if obj.Transform != nil {
		b.CompositeTransform = *obj.Transform
	}

	r := obj.Radius
	switch obj.Kind {
	case scene.BoundBox:
		half := obj.Size.Mul(0.5)
		b.BoxMin, b.BoxMax = obj.Center.Sub(half), obj.Center.Add(half)
	case scene.BoundSphere:
		b.BoxMin, b.BoxMax = obj.Center.Sub(mgl32.Vec3{r, r, r}), obj.Center.Add(mgl32.Vec3{r, r, r})
		b.Margin = r
	case scene.BoundCapsule:
		ext := mgl32.Vec3{r, obj.Length/2 + r, r}
		b.BoxMin, b.BoxMax = obj.Center.Sub(ext), obj.Center.Add(ext)
		b.Margin = r
	case scene.BoundCylinder:
		ext := mgl32.Vec3{r, obj.Length / 2, r}
		b.BoxMin, b.BoxMax = obj.Center.Sub(ext), obj.Center.Add(ext)
	case scene.BoundComposite:
		if err := cb.buildChildren(b, obj); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("bound %s has unknown kind %q", obj.Name, obj.Kind)
	}

	b.BoxCenter = utils.BoxCenter(b.BoxMin, b.BoxMax)
	b.SphereCenter = b.BoxCenter
	if obj.Kind == scene.BoundSphere {
		b.SphereRadius = r
	} else {
		b.SphereRadius = utils.SphereRadius(b.BoxMax, b.SphereCenter)
	}

	if cb.AutoCalculateVolume && !b.IsComposite() {
		b.Volume = volume(obj)
	}
	b.Mass = b.Volume * b.Material.Density
	if cb.AutoCalculateInertia && !b.IsComposite() {
		b.Inertia = inertia(obj)
	}
	return b, nil
}

func (cb *Builder) buildChildren(b *Bound, obj *scene.BoundObject) error {
	var mins, maxs []mgl32.Vec3
	for _, childObj := range obj.Children {
		child, err := cb.Build(childObj)
		if err != nil {
			return errors.Wrapf(err, "composite %s", obj.Name)
		}
		b.Children = append(b.Children, child)

		cMin, cMax := transformBox(child.CompositeTransform, child.BoxMin, child.BoxMax)
		mins = append(mins, cMin)
		maxs = append(maxs, cMax)
		b.Volume += child.Volume
		b.Inertia = b.Inertia.Add(child.Inertia)
	}
	b.BoxMin, b.BoxMax = utils.BoxUnion(mins, maxs)
	return nil
}

func (cb *Builder) material(obj *scene.BoundObject) Material {
	if obj.Material == "" {
		return DefaultMaterial(cb.Game)
	}
	if m, ok := FindMaterial(cb.Game, obj.Material); ok {
		return m
	}
	if cb.Log != nil {
		cb.Log.Warnf("Invalid material '%s' on bound '%s'! Setting to default...", obj.Material, obj.Name)
	}
	return DefaultMaterial(cb.Game)
}

func transformBox(m mgl32.Mat4, bbMin, bbMax mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	var mins, maxs []mgl32.Vec3
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{bbMin[0], bbMin[1], bbMin[2]}
		if i&1 != 0 {
			corner[0] = bbMax[0]
		}
		if i&2 != 0 {
			corner[1] = bbMax[1]
		}
		if i&4 != 0 {
			corner[2] = bbMax[2]
		}
		p := m.Mul4x1(corner.Vec4(1)).Vec3()
		mins = append(mins, p)
		maxs = append(maxs, p)
	}
	return utils.BoxUnion(mins, maxs)
}

func volume(obj *scene.BoundObject) float32 {
	r := float64(obj.Radius)
	l := float64(obj.Length)
	switch obj.Kind {
	case scene.BoundBox:
		return obj.Size[0] * obj.Size[1] * obj.Size[2]
	case scene.BoundSphere:
		return float32(4.0 / 3.0 * math.Pi * r * r * r)
	case scene.BoundCapsule:
		return float32(math.Pi*r*r*l + 4.0/3.0*math.Pi*r*r*r)
	case scene.BoundCylinder:
		return float32(math.Pi * r * r * l)
	}
	return 0
}

// inertia is the principal inertia per unit mass.
func inertia(obj *scene.BoundObject) mgl32.Vec3 {
	r := obj.Radius
	l := obj.Length
	switch obj.Kind {
	case scene.BoundBox:
		x, y, z := obj.Size[0], obj.Size[1], obj.Size[2]
		return mgl32.Vec3{y*y + z*z, x*x + z*z, x*x + y*y}.Mul(1.0 / 12)
	case scene.BoundSphere:
		v := 0.4 * r * r
		return mgl32.Vec3{v, v, v}
	case scene.BoundCapsule:
		// cylinder plus two hemispheres, shifted along the axis
		h := l
		cyl := h * r * r
		hemi := 4.0 / 3.0 * r * r * r
		total := cyl + hemi
		if total == 0 {
			return mgl32.Vec3{}
		}
		axis := (cyl*r*r/2 + hemi*0.4*r*r) / total
		side := (cyl*(r*r/4+h*h/12) + hemi*(0.4*r*r+h*h/4+3*h*r/8)) / total
		return mgl32.Vec3{side, axis, side}
	case scene.BoundCylinder:
		side := (3*r*r + l*l) / 12
		return mgl32.Vec3{side, r * r / 2, side}
	}
	return mgl32.Vec3{}
}
